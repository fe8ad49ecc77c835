package service

import (
	"context"
	"math"

	"github.com/avtomaktab/avtotest-backend/internal/model"
)

const recentResultCount = 5

// resultLister is the repository slice the stats aggregation reads from.
// Satisfied by repository.ResultRepository.
type resultLister interface {
	ListByUser(ctx context.Context, userID int) ([]model.TestResult, error)
}

// StatsService aggregates stored test results for the progress dashboard.
type StatsService struct {
	resultRepo resultLister
}

// NewStatsService creates a new StatsService.
func NewStatsService(resultRepo resultLister) *StatsService {
	return &StatsService{resultRepo: resultRepo}
}

// ForUser computes a user's dashboard figures from their full result history.
// Average and pass rate are rounded to whole numbers; recent tests keep the
// repository's newest-first order.
func (s *StatsService) ForUser(ctx context.Context, userID int) (*model.UserStats, error) {
	results, err := s.resultRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &model.UserStats{
		RecentTests:  []model.TestResult{},
		MonthlyStats: map[string]model.MonthlyStat{},
	}
	if len(results) == 0 {
		return stats, nil
	}

	totalScore := 0
	for _, r := range results {
		totalScore += r.Score
		if r.Score > stats.BestScore {
			stats.BestScore = r.Score
		}
		if r.Passed {
			stats.PassedTests++
		}

		month := r.CreatedAt.Format("2006-01")
		bucket := stats.MonthlyStats[month]
		bucket.Count++
		bucket.TotalScore += r.Score
		stats.MonthlyStats[month] = bucket
	}

	stats.TotalTests = len(results)
	stats.AverageScore = int(math.Round(float64(totalScore) / float64(len(results))))
	stats.PassRate = int(math.Round(float64(stats.PassedTests) / float64(len(results)) * 100))

	n := recentResultCount
	if n > len(results) {
		n = len(results)
	}
	stats.RecentTests = results[:n]

	return stats, nil
}
