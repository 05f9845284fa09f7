package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidCode     = errors.New("code must be 6 digits")
	ErrNoCodeRequested = errors.New("no code requested")
	ErrCodeExpired     = errors.New("code expired")
	ErrTooManyAttempts = errors.New("too many attempts")

	ErrUserNotFound      = errors.New("user not found")
	ErrUnknownCardType   = errors.New("unknown card type")
	ErrUnknownCardStatus = errors.New("unknown card status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// IncorrectCodeError — wrong code submitted; Remaining is how many tries are
// left before the record is discarded.
type IncorrectCodeError struct {
	Remaining int
}

func (e *IncorrectCodeError) Error() string {
	return fmt.Sprintf("incorrect code, %d attempt(s) remaining", e.Remaining)
}
