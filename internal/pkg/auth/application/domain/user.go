package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// DefaultRole tags accounts that never picked one explicitly.
const DefaultRole = "student"

var (
	ErrMissingFields  = errors.New("auth: name, email and password are required")
	ErrPasswordTooBig = errors.New("auth: password exceeds 72 bytes")
)

// User is an account record. Password holds a bcrypt hash and is never
// serialized to clients; OAuth-provisioned accounts get a random hashed
// password that is never revealed.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Role      string             `bson:"role,omitempty" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// NewUser validates the signup fields and returns a User with a hashed
// password. An empty role falls back to DefaultRole.
func NewUser(name, email, plainPassword, role string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || plainPassword == "" {
		return nil, ErrMissingFields
	}

	hashed, err := HashPassword(plainPassword)
	if err != nil {
		return nil, err
	}

	if role = strings.TrimSpace(role); role == "" {
		role = DefaultRole
	}

	return &User{
		Name:      name,
		Email:     email,
		Password:  hashed,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// CheckPassword reports whether plain matches the stored hash. bcrypt's
// comparison is constant-time over the derived key.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// HashPassword derives a bcrypt hash at the default cost.
func HashPassword(plain string) (string, error) {
	if len(plain) > 72 {
		return "", ErrPasswordTooBig
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// RandomPassword returns a random hex string for auto-provisioned accounts.
func RandomPassword() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
