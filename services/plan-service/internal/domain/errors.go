package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPlanNotFound       = errors.New("learning plan not found")
	ErrTooManyUnfinished  = errors.New("too many unfinished plans")
)

// UnfinishedLimitError reports the configured ceiling on open plans.
type UnfinishedLimitError struct {
	Max int
}

func (e *UnfinishedLimitError) Error() string {
	return fmt.Sprintf("Maximum %d unfinished plans allowed", e.Max)
}

func (e *UnfinishedLimitError) Is(target error) bool {
	return target == ErrTooManyUnfinished
}
