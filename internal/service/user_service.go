package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/avtomaktab/avtotest-backend/internal/repository"
	"github.com/avtomaktab/avtotest-backend/internal/response"
	"github.com/jackc/pgx/v5"
)

// UserService handles learner account business logic.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Authenticate resolves a phone + birth year pair to a user account.
// An unknown phone number enrolls on the spot: the school front desk
// hands out no credentials, so first login doubles as registration.
// A known phone with a mismatched birth year is rejected.
func (s *UserService) Authenticate(ctx context.Context, phone string, birthYear int) (*model.User, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.register(ctx, phone, birthYear)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.BirthDate.Year() != birthYear {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) register(ctx context.Context, phone string, birthYear int) (*model.User, error) {
	user := &model.User{
		Phone:     phone,
		BirthDate: time.Date(birthYear, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent login may have registered the same phone first.
		if errors.Is(err, repository.ErrDuplicatePhone) {
			return s.userRepo.GetByPhone(ctx, phone)
		}
		return nil, fmt.Errorf("register user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers retrieves users with pagination.
func (s *UserService) ListUsers(ctx context.Context, page, perPage int) ([]model.User, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	users, total, err := s.userRepo.ListPaginated(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if users == nil {
		users = []model.User{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return users, pagination, nil
}

// Create inserts a user directly from the admin panel.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("parse birth date: %w", err)
	}

	user := &model.User{Phone: req.Phone, BirthDate: birthDate}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user by ID.
func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.userRepo.Delete(ctx, id)
}
