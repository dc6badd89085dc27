package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation            = errors.New("validation failed")
	ErrAlreadyRegistered     = errors.New("participant already registered")
	ErrNotFound              = errors.New("participant not found")
	ErrNotRegistered         = errors.New("user is not registered")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrRegistrationClosed    = errors.New("registration is closed")
	ErrNoSession             = errors.New("no active registration session")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrInvalidPromotionCount = errors.New("invalid promotion count")
	ErrIntegration           = errors.New("export integration failed")
	ErrExportDisabled        = errors.New("export is not configured")
)

// ValidationError - пользовательский ввод отклонён; диалог остаётся на том же шаге
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap позволяет проверять errors.Is(err, ErrValidation)
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func reject(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
