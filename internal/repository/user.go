package repository

import (
	"context"
	"errors"

	"github.com/marahateeq/user-api/internal/domain"
)

var (
	// ErrNotFound is returned when no user row matches the requested id.
	ErrNotFound = errors.New("user not found")
	// ErrConflict is returned when an insert or update would duplicate a
	// unique username or email.
	ErrConflict = errors.New("username or email already exists")
)

// FieldUpdate names a mutable column and the value to bind for it. Names are
// validated against the repository's allow-list before any statement is built.
type FieldUpdate struct {
	Name  string
	Value string
}

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (int64, error)
	Update(ctx context.Context, id int64, fields []FieldUpdate) error
	Delete(ctx context.Context, id int64) error
}
