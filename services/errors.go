package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// ValidationError reports malformed input together with the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError never says whether the record exists under another owner.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ForbiddenError is a role-hierarchy violation. Reason is for logs only.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return "not permitted"
}

type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " already exists"
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func forbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}

// translate maps storage errors onto the service taxonomy.
func translate(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &NotFoundError{Resource: resource}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ConflictError{Field: "email"}
	default:
		return err
	}
}
