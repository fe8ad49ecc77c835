package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avtomaktab/avtotest-backend/internal/model"
)

type fakeResultLister struct {
	results []model.TestResult
	err     error
}

func (f *fakeResultLister) ListByUser(ctx context.Context, userID int) ([]model.TestResult, error) {
	return f.results, f.err
}

func resultAt(score int, passed bool, year int, month time.Month) model.TestResult {
	return model.TestResult{
		Score:     score,
		Total:     25,
		Passed:    passed,
		CreatedAt: time.Date(year, month, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestForUserEmptyHistory(t *testing.T) {
	svc := NewStatsService(&fakeResultLister{})

	stats, err := svc.ForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}
	if stats.TotalTests != 0 || stats.PassRate != 0 {
		t.Errorf("empty history stats = %+v, want zeroes", stats)
	}
	if stats.RecentTests == nil || stats.MonthlyStats == nil {
		t.Error("empty history must still return non-nil slices and maps")
	}
}

func TestForUserAggregates(t *testing.T) {
	// Newest first, the repository order.
	results := []model.TestResult{
		resultAt(20, true, 2026, time.March),
		resultAt(19, true, 2026, time.March),
		resultAt(10, false, 2026, time.February),
	}
	svc := NewStatsService(&fakeResultLister{results: results})

	stats, err := svc.ForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}

	if stats.TotalTests != 3 || stats.BestScore != 20 || stats.PassedTests != 2 {
		t.Errorf("stats = %+v, want 3 tests, best 20, passed 2", stats)
	}
	// 49/3 = 16.33 rounds to 16; 2/3 = 66.67% rounds to 67.
	if stats.AverageScore != 16 {
		t.Errorf("AverageScore = %d, want 16", stats.AverageScore)
	}
	if stats.PassRate != 67 {
		t.Errorf("PassRate = %d, want 67", stats.PassRate)
	}

	march := stats.MonthlyStats["2026-03"]
	if march.Count != 2 || march.TotalScore != 39 {
		t.Errorf("2026-03 bucket = %+v, want count 2 total 39", march)
	}
	feb := stats.MonthlyStats["2026-02"]
	if feb.Count != 1 || feb.TotalScore != 10 {
		t.Errorf("2026-02 bucket = %+v, want count 1 total 10", feb)
	}
}

func TestForUserRecentTestsCapped(t *testing.T) {
	results := make([]model.TestResult, 0, 8)
	for i := 0; i < 8; i++ {
		results = append(results, resultAt(25-i, true, 2026, time.January))
	}
	svc := NewStatsService(&fakeResultLister{results: results})

	stats, err := svc.ForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}
	if len(stats.RecentTests) != recentResultCount {
		t.Fatalf("RecentTests has %d entries, want %d", len(stats.RecentTests), recentResultCount)
	}
	if stats.RecentTests[0].Score != 25 {
		t.Errorf("RecentTests[0].Score = %d, want newest first", stats.RecentTests[0].Score)
	}
}

func TestForUserRepositoryError(t *testing.T) {
	wantErr := errors.New("db down")
	svc := NewStatsService(&fakeResultLister{err: wantErr})

	if _, err := svc.ForUser(context.Background(), 1); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
