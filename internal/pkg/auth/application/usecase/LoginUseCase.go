package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	repository "github.com/SutharYagnesh/EduPath/internal/pkg/auth/persistence/repository/port"
	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/token"
)

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is what the client needs to act as the user.
type LoginResult struct {
	Token string
	Name  string
	Role  string
}

// LoginUseCase verifies credentials and mints a bearer token.
type LoginUseCase struct {
	Repo     repository.UserRepository
	Secret   []byte
	Validity time.Duration
}

func NewLoginUseCase(repo repository.UserRepository, secret []byte) *LoginUseCase {
	return &LoginUseCase{Repo: repo, Secret: secret, Validity: token.DefaultValidity}
}

// Execute returns ErrInvalidCredentials for both unknown emails and wrong
// passwords so callers cannot probe for registered accounts.
func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := uc.Repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if !user.CheckPassword(in.Password) {
		return nil, ErrInvalidCredentials
	}

	tok, err := token.Generate(user.ID.Hex(), user.Role, uc.Secret, uc.Validity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &LoginResult{Token: tok, Name: user.Name, Role: user.Role}, nil
}
