package repository

import (
	"context"

	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactRepository handles contact form message data access.
type ContactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

// ListPaginated retrieves messages newest first, optionally filtered by status.
func (r *ContactRepository) ListPaginated(ctx context.Context, status *model.ContactStatus, limit, offset int) ([]model.ContactMessage, int, error) {
	countQuery := `SELECT COUNT(*) FROM contact_messages`
	var countArgs []interface{}
	if status != nil {
		countQuery += ` WHERE status = $1`
		countArgs = append(countArgs, *status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, phone, message, status, created_at FROM contact_messages`
	var args []interface{}
	if status != nil {
		query += ` WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, *status, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var messages []model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.Message, &m.Status, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		messages = append(messages, m)
	}
	return messages, total, rows.Err()
}

// Create inserts a new contact message with status NEW.
func (r *ContactRepository) Create(ctx context.Context, m *model.ContactMessage) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (name, phone, message, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		m.Name, m.Phone, m.Message, model.ContactStatusNew,
	).Scan(&m.ID, &m.CreatedAt)
}

// UpdateStatus changes a message's review status.
func (r *ContactRepository) UpdateStatus(ctx context.Context, id int, status model.ContactStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_messages SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a contact message by ID.
func (r *ContactRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	return err
}

// CountByStatus returns the number of messages with the given status.
func (r *ContactRepository) CountByStatus(ctx context.Context, status model.ContactStatus) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE status = $1`, status).Scan(&n)
	return n, err
}
