package usecase

import (
	"context"
	"errors"
	"fmt"

	auth "github.com/SutharYagnesh/EduPath/internal/pkg/auth/application/domain"
	repository "github.com/SutharYagnesh/EduPath/internal/pkg/auth/persistence/repository/port"
)

// GetProfileUseCase loads the account behind a verified token subject.
type GetProfileUseCase struct {
	Repo repository.UserRepository
}

func NewGetProfileUseCase(repo repository.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{Repo: repo}
}

// Execute returns ErrUnknownSubject when the token's subject no longer maps
// to an account; callers treat that as an authentication failure, not a
// server error.
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID string) (*auth.User, error) {
	user, err := uc.Repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownSubject
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}
