package service

import (
	"context"

	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/avtomaktab/avtotest-backend/internal/repository"
	"github.com/avtomaktab/avtotest-backend/internal/response"
)

// ContactService handles contact form business logic.
type ContactService struct {
	contactRepo *repository.ContactRepository
}

// NewContactService creates a new ContactService.
func NewContactService(contactRepo *repository.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// Submit stores a new message from the public contact form.
func (s *ContactService) Submit(ctx context.Context, req *model.CreateContactRequest) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		Name:    req.Name,
		Phone:   req.Phone,
		Message: req.Message,
		Status:  model.ContactStatusNew,
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages retrieves messages with pagination and optional status filter.
func (s *ContactService) ListMessages(ctx context.Context, status *model.ContactStatus, page, perPage int) ([]model.ContactMessage, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	messages, total, err := s.contactRepo.ListPaginated(ctx, status, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if messages == nil {
		messages = []model.ContactMessage{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return messages, pagination, nil
}

// UpdateStatus marks a message as reviewed or back to new.
// Returns false when the message does not exist.
func (s *ContactService) UpdateStatus(ctx context.Context, id int, status model.ContactStatus) (bool, error) {
	return s.contactRepo.UpdateStatus(ctx, id, status)
}

// Delete removes a message by ID.
func (s *ContactService) Delete(ctx context.Context, id int) error {
	return s.contactRepo.Delete(ctx, id)
}
