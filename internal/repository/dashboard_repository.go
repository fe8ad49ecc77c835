package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardRepository handles admin dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the high-level metrics for the dashboard.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (totalUsers, totalQuestions, totalLessons, totalResults, newMessages int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM questions),
			(SELECT COUNT(*) FROM lessons),
			(SELECT COUNT(*) FROM test_results),
			(SELECT COUNT(*) FROM contact_messages WHERE status = 'NEW')`,
	).Scan(&totalUsers, &totalQuestions, &totalLessons, &totalResults, &newMessages)
	return
}

// GetPassCounts retrieves how many stored results passed and failed.
func (r *DashboardRepository) GetPassCounts(ctx context.Context) (passed, failed int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE passed),
			COUNT(*) FILTER (WHERE NOT passed)
		 FROM test_results`,
	).Scan(&passed, &failed)
	return
}
