package usecase

import "fmt"

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("auth use case persistence error")

var (
	ErrEmailTaken         = fmt.Errorf("user already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnknownSubject     = fmt.Errorf("no account for subject")
)
