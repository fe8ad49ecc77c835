package exam

import (
	"fmt"
	"testing"
)

// render turns a marker strip into a compact literal like "[0 … 4 5 6 … 9]".
func render(markers []Marker) string {
	out := "["
	for i, m := range markers {
		if i > 0 {
			out += " "
		}
		if m.Ellipsis {
			out += "…"
		} else {
			out += fmt.Sprintf("%d", m.Index)
		}
	}
	return out + "]"
}

func TestPageMarkers(t *testing.T) {
	tests := []struct {
		current int
		total   int
		want    string
	}{
		{current: 5, total: 10, want: "[0 … 4 5 6 … 9]"},
		{current: 0, total: 10, want: "[0 1 … 9]"},
		{current: 1, total: 10, want: "[0 1 2 … 9]"},
		{current: 2, total: 10, want: "[0 1 2 3 … 9]"},
		{current: 3, total: 10, want: "[0 … 2 3 4 … 9]"},
		{current: 8, total: 10, want: "[0 … 7 8 9]"},
		{current: 9, total: 10, want: "[0 … 8 9]"},
		{current: 0, total: 1, want: "[0]"},
		{current: 0, total: 2, want: "[0 1]"},
		{current: 1, total: 3, want: "[0 1 2]"},
		{current: 12, total: 25, want: "[0 … 11 12 13 … 24]"},
	}

	for _, tt := range tests {
		got := render(PageMarkers(tt.current, tt.total))
		if got != tt.want {
			t.Errorf("PageMarkers(%d, %d) = %s, want %s", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestPageMarkersEmpty(t *testing.T) {
	if got := PageMarkers(0, 0); got != nil {
		t.Fatalf("PageMarkers(0, 0) = %v, want nil", got)
	}
}
