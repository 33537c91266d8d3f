package service

import (
	"context"
	"errors"

	"github.com/marahateeq/user-api/internal/domain"
	"github.com/marahateeq/user-api/internal/repository"
)

var (
	// ErrMissingRequiredFields indicates a create request without username or email.
	ErrMissingRequiredFields = errors.New("username and email are required")
	// ErrEmptyUpdate indicates an update request naming no updatable field.
	ErrEmptyUpdate = errors.New("no data provided")
)

// UserUpdate carries the optional replacement values of an update request.
// A nil field means "leave unchanged".
type UserUpdate struct {
	Username *string
	Email    *string
	FullName *string
}

// UserService describes user lifecycle operations.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, username, email, fullName string) (*domain.User, error)
	Update(ctx context.Context, id int64, update UserUpdate) error
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) Create(ctx context.Context, username, email, fullName string) (*domain.User, error) {
	if username == "" || email == "" {
		return nil, ErrMissingRequiredFields
	}

	user := &domain.User{
		Username: username,
		Email:    email,
		FullName: fullName,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies the supplied subset of fields to an existing user. Existence
// is checked up front so an absent id reports not-found rather than a silent
// no-op; the lookup and the write are not atomic against concurrent deletes.
func (s *userService) Update(ctx context.Context, id int64, update UserUpdate) error {
	fields := update.fields()
	if len(fields) == 0 {
		return ErrEmptyUpdate
	}

	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Update(ctx, id, fields)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

func (u UserUpdate) fields() []repository.FieldUpdate {
	var fields []repository.FieldUpdate
	if u.Username != nil {
		fields = append(fields, repository.FieldUpdate{Name: "username", Value: *u.Username})
	}
	if u.Email != nil {
		fields = append(fields, repository.FieldUpdate{Name: "email", Value: *u.Email})
	}
	if u.FullName != nil {
		fields = append(fields, repository.FieldUpdate{Name: "full_name", Value: *u.FullName})
	}
	return fields
}
