package service

import (
	"context"

	"github.com/avtomaktab/avtotest-backend/internal/repository"
)

// DashboardSummary is the admin landing page payload.
type DashboardSummary struct {
	TotalUsers     int `json:"total_users"`
	TotalQuestions int `json:"total_questions"`
	TotalLessons   int `json:"total_lessons"`
	TotalResults   int `json:"total_results"`
	NewMessages    int `json:"new_messages"`
	PassedResults  int `json:"passed_results"`
	FailedResults  int `json:"failed_results"`
}

// DashboardService handles admin dashboard aggregation.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// GetSummary collects the dashboard counters.
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	sum := &DashboardSummary{}
	var err error

	sum.TotalUsers, sum.TotalQuestions, sum.TotalLessons, sum.TotalResults, sum.NewMessages, err =
		s.dashboardRepo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	sum.PassedResults, sum.FailedResults, err = s.dashboardRepo.GetPassCounts(ctx)
	if err != nil {
		return nil, err
	}
	return sum, nil
}
