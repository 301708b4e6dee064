package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	auth "github.com/SutharYagnesh/EduPath/internal/pkg/auth/application/domain"
	repository "github.com/SutharYagnesh/EduPath/internal/pkg/auth/persistence/repository/port"
	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/token"
)

var secret = []byte("test-secret")

// fakeUserRepo mirrors the adapter's unique-email semantics in memory.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*auth.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u auth.User) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	stored := u
	f.users[u.ID.Hex()] = &stored
	out := stored
	return &out, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func TestSignupThenLogin(t *testing.T) {
	repo := newFakeUserRepo()
	signup := NewSignupUseCase(repo)
	login := NewLoginUseCase(repo, secret)

	created, err := signup.Execute(context.Background(), SignupInput{
		Name:     "Asha",
		Email:    "Asha@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, auth.DefaultRole, created.Role)

	// Login is case-insensitive on email because signup normalized it.
	res, err := login.Execute(context.Background(), LoginInput{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", res.Name)
	assert.Equal(t, auth.DefaultRole, res.Role)

	claims, err := token.Verify(res.Token, secret)
	require.NoError(t, err)
	assert.Equal(t, created.ID.Hex(), claims.UserID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	signup := NewSignupUseCase(repo)

	in := SignupInput{Name: "Asha", Email: "asha@example.com", Password: "secret123"}
	_, err := signup.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = signup.Execute(context.Background(), in)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupMissingFields(t *testing.T) {
	signup := NewSignupUseCase(newFakeUserRepo())

	_, err := signup.Execute(context.Background(), SignupInput{Email: "a@b.c", Password: "pw"})
	assert.ErrorIs(t, err, auth.ErrMissingFields)
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	repo := newFakeUserRepo()
	signup := NewSignupUseCase(repo)
	login := NewLoginUseCase(repo, secret)

	_, err := signup.Execute(context.Background(), SignupInput{
		Name: "Asha", Email: "asha@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, wrongPw := login.Execute(context.Background(), LoginInput{
		Email: "asha@example.com", Password: "nope",
	})
	_, unknown := login.Execute(context.Background(), LoginInput{
		Email: "ghost@example.com", Password: "nope",
	})

	assert.ErrorIs(t, wrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
}

func TestOAuthLoginProvisionsOnce(t *testing.T) {
	repo := newFakeUserRepo()
	oauth := NewOAuthLoginUseCase(repo, secret)

	in := OAuthLoginInput{Name: "Asha", Email: "asha@example.com"}

	first, err := oauth.Execute(context.Background(), in)
	require.NoError(t, err)
	second, err := oauth.Execute(context.Background(), in)
	require.NoError(t, err)

	firstClaims, err := token.Verify(first.Token, secret)
	require.NoError(t, err)
	secondClaims, err := token.Verify(second.Token, secret)
	require.NoError(t, err)

	// Both logins resolve to the same provisioned account.
	assert.Equal(t, firstClaims.UserID, secondClaims.UserID)
	assert.Len(t, repo.users, 1)
}

func TestOAuthAccountHasUnusablePassword(t *testing.T) {
	repo := newFakeUserRepo()
	oauth := NewOAuthLoginUseCase(repo, secret)
	login := NewLoginUseCase(repo, secret)

	_, err := oauth.Execute(context.Background(), OAuthLoginInput{
		Name: "Asha", Email: "asha@example.com",
	})
	require.NoError(t, err)

	// Nobody knows the random password, so credential login fails.
	_, err = login.Execute(context.Background(), LoginInput{
		Email: "asha@example.com", Password: "",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetProfileUnknownSubject(t *testing.T) {
	uc := NewGetProfileUseCase(newFakeUserRepo())

	_, err := uc.Execute(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrUnknownSubject)
}

func TestGetProfile(t *testing.T) {
	repo := newFakeUserRepo()
	signup := NewSignupUseCase(repo)
	uc := NewGetProfileUseCase(repo)

	created, err := signup.Execute(context.Background(), SignupInput{
		Name: "Asha", Email: "asha@example.com", Password: strings.Repeat("p", 12),
	})
	require.NoError(t, err)

	user, err := uc.Execute(context.Background(), created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
}
