package repository

import (
	"context"

	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles question and choice data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListAll retrieves the full question bank, oldest first.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_text, image_url, created_at FROM questions
		 ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.ImageURL, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ListAllChoices retrieves every choice in the bank.
func (r *QuestionRepository) ListAllChoices(ctx context.Context) ([]model.Choice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_id, choice_text, is_correct FROM choices`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var choices []model.Choice
	for rows.Next() {
		var c model.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.IsCorrect); err != nil {
			return nil, err
		}
		choices = append(choices, c)
	}
	return choices, rows.Err()
}

// GetByID retrieves a question with its choices.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, []model.Choice, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, question_text, image_url, created_at FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.QuestionText, &q.ImageURL, &q.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, question_id, choice_text, is_correct FROM choices WHERE question_id = $1`, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var choices []model.Choice
	for rows.Next() {
		var c model.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.IsCorrect); err != nil {
			return nil, nil, err
		}
		choices = append(choices, c)
	}
	return q, choices, rows.Err()
}

// Create inserts a question together with its choices in one transaction.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question, choices []model.Choice) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO questions (question_text, image_url) VALUES ($1, $2)
		 RETURNING id, created_at`,
		q.QuestionText, q.ImageURL,
	).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return err
	}

	for i := range choices {
		choices[i].QuestionID = q.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO choices (question_id, choice_text, is_correct)
			 VALUES ($1, $2, $3) RETURNING id`,
			choices[i].QuestionID, choices[i].ChoiceText, choices[i].IsCorrect,
		).Scan(&choices[i].ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Update rewrites a question and replaces its choices.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question, choices []model.Choice) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE questions SET question_text = $1, image_url = $2 WHERE id = $3`,
		q.QuestionText, q.ImageURL, q.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `DELETE FROM choices WHERE question_id = $1`, q.ID); err != nil {
		return err
	}
	for i := range choices {
		choices[i].QuestionID = q.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO choices (question_id, choice_text, is_correct)
			 VALUES ($1, $2, $3) RETURNING id`,
			choices[i].QuestionID, choices[i].ChoiceText, choices[i].IsCorrect,
		).Scan(&choices[i].ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a question; choices go with it via ON DELETE CASCADE.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}

// Count returns the number of questions in the bank.
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n)
	return n, err
}
