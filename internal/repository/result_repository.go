package repository

import (
	"context"

	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResultRepository handles persisted test result data access.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// ListByUser retrieves all of a user's results, newest first.
func (r *ResultRepository) ListByUser(ctx context.Context, userID int) ([]model.TestResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, score, total, passed, created_at
		 FROM test_results WHERE user_id = $1
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.TestResult
	for rows.Next() {
		var t model.TestResult
		if err := rows.Scan(&t.ID, &t.UserID, &t.Score, &t.Total, &t.Passed, &t.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

// ListPaginated retrieves results across all users, newest first.
func (r *ResultRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.TestResult, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM test_results`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, score, total, passed, created_at
		 FROM test_results
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []model.TestResult
	for rows.Next() {
		var t model.TestResult
		if err := rows.Scan(&t.ID, &t.UserID, &t.Score, &t.Total, &t.Passed, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		results = append(results, t)
	}
	return results, total, rows.Err()
}

// Insert persists a single result.
func (r *ResultRepository) Insert(ctx context.Context, t *model.TestResult) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO test_results (user_id, score, total, passed, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		t.UserID, t.Score, t.Total, t.Passed, t.CreatedAt,
	).Scan(&t.ID)
}

// Count returns the total number of stored results.
func (r *ResultRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM test_results`).Scan(&n)
	return n, err
}
