package service

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateCredential = errors.New("email already registered")
	ErrInfrastructure      = errors.New("infrastructure failure")
	ErrNotAuthenticated    = errors.New("not authenticated")
)

// infraError marks err as an infrastructure fault so callers can tell it
// apart from a rejected password with errors.Is(err, ErrInfrastructure).
func infraError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInfrastructure, err)
}
