package repository

import (
	"context"
	"errors"

	auth "github.com/SutharYagnesh/EduPath/internal/pkg/auth/application/domain"
)

var (
	ErrNotFound       = errors.New("user repository: not found")
	ErrDuplicateEmail = errors.New("user repository: email already registered")
)

// UserRepository defines persistence operations for accounts. Implementations
// map backend-specific failures to the sentinel errors above.
type UserRepository interface {
	Create(ctx context.Context, u auth.User) (*auth.User, error)
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
	FindByID(ctx context.Context, id string) (*auth.User, error)
}
