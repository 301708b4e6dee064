package usecase

import "fmt"

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("chat use case persistence error")

var (
	ErrValidation      = fmt.Errorf("chat use case validation error")
	ErrNotFound        = fmt.Errorf("chat not found")
	ErrUpstream        = fmt.Errorf("assistant upstream error")
	ErrUpstreamTimeout = fmt.Errorf("assistant upstream timeout")
)
