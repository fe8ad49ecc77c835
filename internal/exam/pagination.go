package exam

// Marker is one element of the compressed pagination strip: either a
// jumpable question index or an ellipsis placeholder.
type Marker struct {
	Index    int  `json:"index"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

var ellipsis = Marker{Index: -1, Ellipsis: true}

// PageMarkers computes the pagination strip for the given position.
// The first and last indexes are always present; the current index and
// its immediate neighbours appear when in range; gaps wider than one are
// collapsed into an ellipsis. The strip is a pure function of
// (current, total) and is recomputed on every request, never cached.
//
// For total=10, current=5 the strip is [0 … 4 5 6 … 9].
func PageMarkers(current, total int) []Marker {
	if total <= 0 {
		return nil
	}

	markers := []Marker{{Index: 0}}

	if current > 2 {
		markers = append(markers, ellipsis)
	}
	if current > 1 {
		markers = append(markers, Marker{Index: current - 1})
	}
	if current > 0 && current < total-1 {
		markers = append(markers, Marker{Index: current})
	}
	if current < total-2 {
		markers = append(markers, Marker{Index: current + 1})
	}
	if current < total-3 {
		markers = append(markers, ellipsis)
	}
	if total > 1 {
		markers = append(markers, Marker{Index: total - 1})
	}

	return markers
}
