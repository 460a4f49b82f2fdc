package models

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("record not found")
)

type accessDeniedError struct {
	msg string
}

func (e accessDeniedError) Error() string { return e.msg }

func (e accessDeniedError) Is(target error) bool { return target == ErrAccessDenied }

// NewAccessDenied is returned when the acting user has no relation to the target company, job or conversation
func NewAccessDenied(msg string) error {
	return accessDeniedError{msg: msg}
}

type notFoundError struct {
	entity string
}

func (e notFoundError) Error() string { return fmt.Sprintf("%s not found", e.entity) }

func (e notFoundError) Is(target error) bool { return target == ErrNotFound }

func NewNotFound(entity string) error {
	return notFoundError{entity: entity}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string { return e.Message }

func NewValidationError(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

// PolicyError is a user-visible refusal of a well-formed request, e.g. deleting a job with applications
type PolicyError struct {
	Message string
}

func (e PolicyError) Error() string { return e.Message }

func NewPolicyError(message string) error {
	return PolicyError{Message: message}
}
