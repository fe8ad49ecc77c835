package model

import (
	"time"

	"github.com/google/uuid"
)

// Question represents a single exam question in the bank.
type Question struct {
	ID           uuid.UUID `json:"id"`
	QuestionText string    `json:"question_text"`
	ImageURL     *string   `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Choice represents one answer option of a question.
// Exactly one choice per question carries IsCorrect=true; this is
// established at data-entry time and assumed by the exam engine.
type Choice struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	ChoiceText string    `json:"choice_text"`
	IsCorrect  bool      `json:"is_correct"`
}

// ChoiceForUser is a choice without the correctness flag, sent to test takers.
type ChoiceForUser struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	ChoiceText string    `json:"choice_text"`
}

// AddChoiceRequest is one answer option inside a question create payload.
type AddChoiceRequest struct {
	ChoiceText string `json:"choice_text" binding:"required,min=1,max=500"`
	IsCorrect  bool   `json:"is_correct"`
}

// CreateQuestionRequest is the admin payload for adding a question with its choices.
type CreateQuestionRequest struct {
	QuestionText string             `json:"question_text" binding:"required,min=1,max=2000"`
	ImageURL     *string            `json:"image_url" binding:"omitempty,max=500"`
	Choices      []AddChoiceRequest `json:"choices" binding:"required,min=2,max=6,dive"`
}
