package service

import (
	"context"
	"errors"

	"github.com/avtomaktab/avtotest-backend/internal/exam"
	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/avtomaktab/avtotest-backend/internal/repository"
	"github.com/google/uuid"
)

// ErrNoCorrectChoice is returned when a question payload does not mark
// exactly one choice as correct.
var ErrNoCorrectChoice = errors.New("question must have exactly one correct choice")

// QuestionService handles question bank business logic.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// LoadBank fetches the full question bank for the exam engine.
func (s *QuestionService) LoadBank(ctx context.Context) (*exam.Bank, error) {
	questions, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	choices, err := s.questionRepo.ListAllChoices(ctx)
	if err != nil {
		return nil, err
	}
	return &exam.Bank{Questions: questions, Choices: choices}, nil
}

// ListAll retrieves every question with its choices, correctness included.
// Admin use only; test takers get their choices through the exam engine.
func (s *QuestionService) ListAll(ctx context.Context) ([]model.Question, map[uuid.UUID][]model.Choice, error) {
	questions, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	choices, err := s.questionRepo.ListAllChoices(ctx)
	if err != nil {
		return nil, nil, err
	}

	byQuestion := make(map[uuid.UUID][]model.Choice)
	for _, c := range choices {
		byQuestion[c.QuestionID] = append(byQuestion[c.QuestionID], c)
	}
	return questions, byQuestion, nil
}

// GetByID retrieves a question with its choices.
func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, []model.Choice, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// Create validates and inserts a question with its choices.
func (s *QuestionService) Create(ctx context.Context, req *model.CreateQuestionRequest) (*model.Question, []model.Choice, error) {
	choices, err := buildChoices(req.Choices)
	if err != nil {
		return nil, nil, err
	}

	q := &model.Question{QuestionText: req.QuestionText, ImageURL: req.ImageURL}
	if err := s.questionRepo.Create(ctx, q, choices); err != nil {
		return nil, nil, err
	}
	return q, choices, nil
}

// Update rewrites a question and replaces its choices.
func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, req *model.CreateQuestionRequest) (*model.Question, []model.Choice, error) {
	choices, err := buildChoices(req.Choices)
	if err != nil {
		return nil, nil, err
	}

	q := &model.Question{ID: id, QuestionText: req.QuestionText, ImageURL: req.ImageURL}
	if err := s.questionRepo.Update(ctx, q, choices); err != nil {
		return nil, nil, err
	}
	return q, choices, nil
}

// Delete removes a question and its choices.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.questionRepo.Delete(ctx, id)
}

func buildChoices(reqs []model.AddChoiceRequest) ([]model.Choice, error) {
	correct := 0
	choices := make([]model.Choice, 0, len(reqs))
	for _, c := range reqs {
		if c.IsCorrect {
			correct++
		}
		choices = append(choices, model.Choice{ChoiceText: c.ChoiceText, IsCorrect: c.IsCorrect})
	}
	if correct != 1 {
		return nil, ErrNoCorrectChoice
	}
	return choices, nil
}
