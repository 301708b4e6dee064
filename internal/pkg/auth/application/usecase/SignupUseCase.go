package usecase

import (
	"context"
	"errors"
	"fmt"

	auth "github.com/SutharYagnesh/EduPath/internal/pkg/auth/application/domain"
	repository "github.com/SutharYagnesh/EduPath/internal/pkg/auth/persistence/repository/port"
)

// SignupInput carries the registration fields.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// SignupUseCase registers a local account with a hashed password.
// Hexagonal: depends on repository port only
// One class per use case (own file)
type SignupUseCase struct {
	Repo repository.UserRepository
}

func NewSignupUseCase(repo repository.UserRepository) *SignupUseCase {
	return &SignupUseCase{Repo: repo}
}

// Execute validates and persists the account. Duplicate emails surface as
// ErrEmailTaken; the unique index makes the check atomic with the insert.
func (uc *SignupUseCase) Execute(ctx context.Context, in SignupInput) (*auth.User, error) {
	u, err := auth.NewUser(in.Name, in.Email, in.Password, in.Role)
	if err != nil {
		return nil, err
	}

	created, err := uc.Repo.Create(ctx, *u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return created, nil
}
