package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	auth "github.com/SutharYagnesh/EduPath/internal/pkg/auth/application/domain"
	repository "github.com/SutharYagnesh/EduPath/internal/pkg/auth/persistence/repository/port"
	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/token"
)

// OAuthLoginInput carries the identity fields asserted by the OAuth provider.
type OAuthLoginInput struct {
	Name  string
	Email string
}

// OAuthLoginUseCase resolves an OAuth identity to a local account,
// provisioning one on first login with a random, hashed, never-revealed
// password.
type OAuthLoginUseCase struct {
	Repo     repository.UserRepository
	Secret   []byte
	Validity time.Duration
}

func NewOAuthLoginUseCase(repo repository.UserRepository, secret []byte) *OAuthLoginUseCase {
	return &OAuthLoginUseCase{Repo: repo, Secret: secret, Validity: token.DefaultValidity}
}

func (uc *OAuthLoginUseCase) Execute(ctx context.Context, in OAuthLoginInput) (*LoginResult, error) {
	user, err := uc.Repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		user, err = uc.provision(ctx, in)
		if err != nil {
			return nil, err
		}
	}

	tok, err := token.Generate(user.ID.Hex(), user.Role, uc.Secret, uc.Validity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &LoginResult{Token: tok, Name: user.Name, Role: user.Role}, nil
}

func (uc *OAuthLoginUseCase) provision(ctx context.Context, in OAuthLoginInput) (*auth.User, error) {
	random, err := auth.RandomPassword()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	u, err := auth.NewUser(in.Name, in.Email, random, auth.DefaultRole)
	if err != nil {
		return nil, err
	}

	created, err := uc.Repo.Create(ctx, *u)
	if err != nil {
		// A concurrent first login may have provisioned the account already.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return uc.Repo.FindByEmail(ctx, in.Email)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return created, nil
}
