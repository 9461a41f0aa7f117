package service

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPromptRequired     = errors.New("prompt cannot be empty")
	ErrInsufficientCredit = errors.New("insufficient credit balance")
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("operation not permitted")
	ErrInvalidSignature   = errors.New("payment signature mismatch")
)
