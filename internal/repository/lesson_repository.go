package repository

import (
	"context"

	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LessonRepository handles video lesson data access.
type LessonRepository struct {
	pool *pgxpool.Pool
}

// NewLessonRepository creates a new LessonRepository.
func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{pool: pool}
}

// ListOrdered retrieves all lessons in their curriculum order.
func (r *LessonRepository) ListOrdered(ctx context.Context) ([]model.Lesson, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, video_url, order_number, created_at
		 FROM lessons ORDER BY order_number ASC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []model.Lesson
	for rows.Next() {
		var l model.Lesson
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.VideoURL, &l.OrderNumber, &l.CreatedAt); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// GetByID retrieves a lesson by ID.
func (r *LessonRepository) GetByID(ctx context.Context, id int) (*model.Lesson, error) {
	l := &model.Lesson{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, video_url, order_number, created_at
		 FROM lessons WHERE id = $1`, id,
	).Scan(&l.ID, &l.Title, &l.Description, &l.VideoURL, &l.OrderNumber, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Create inserts a new lesson.
func (r *LessonRepository) Create(ctx context.Context, l *model.Lesson) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO lessons (title, description, video_url, order_number)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		l.Title, l.Description, l.VideoURL, l.OrderNumber,
	).Scan(&l.ID, &l.CreatedAt)
}

// Update modifies an existing lesson.
func (r *LessonRepository) Update(ctx context.Context, l *model.Lesson) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE lessons SET title = $1, description = $2, video_url = $3, order_number = $4
		 WHERE id = $5`,
		l.Title, l.Description, l.VideoURL, l.OrderNumber, l.ID)
	return err
}

// Delete removes a lesson by ID.
func (r *LessonRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	return err
}

// Count returns the total number of lessons.
func (r *LessonRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&n)
	return n, err
}
