package auth

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCode covers wrong, expired, consumed and unknown codes alike;
	// callers must not leak which one it was.
	ErrInvalidCode = errors.New("invalid or expired OTP code")
)

type ThrottledError struct {
	RetryAfter time.Duration
}

func (e *ThrottledError) Error() string {
	return "too many requests"
}
