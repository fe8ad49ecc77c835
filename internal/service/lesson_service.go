package service

import (
	"context"

	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/avtomaktab/avtotest-backend/internal/repository"
)

// LessonService handles video lesson business logic.
type LessonService struct {
	lessonRepo *repository.LessonRepository
}

// NewLessonService creates a new LessonService.
func NewLessonService(lessonRepo *repository.LessonRepository) *LessonService {
	return &LessonService{lessonRepo: lessonRepo}
}

// ListOrdered retrieves all lessons in curriculum order.
func (s *LessonService) ListOrdered(ctx context.Context) ([]model.Lesson, error) {
	lessons, err := s.lessonRepo.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	if lessons == nil {
		lessons = []model.Lesson{}
	}
	return lessons, nil
}

// GetByID retrieves a lesson by ID.
func (s *LessonService) GetByID(ctx context.Context, id int) (*model.Lesson, error) {
	return s.lessonRepo.GetByID(ctx, id)
}

// Create inserts a new lesson.
func (s *LessonService) Create(ctx context.Context, req *model.CreateLessonRequest) (*model.Lesson, error) {
	lesson := &model.Lesson{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		OrderNumber: req.OrderNumber,
	}
	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// Update modifies an existing lesson.
func (s *LessonService) Update(ctx context.Context, id int, req *model.CreateLessonRequest) (*model.Lesson, error) {
	lesson := &model.Lesson{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		OrderNumber: req.OrderNumber,
	}
	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// Delete removes a lesson by ID.
func (s *LessonService) Delete(ctx context.Context, id int) error {
	return s.lessonRepo.Delete(ctx, id)
}
