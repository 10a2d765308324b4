package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure. The HTTP layer maps each kind to one status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindAuthz
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindAuthz:
		return "authz"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// FieldError names one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the error type returned by every service for expected failures.
// Anything else escaping a service is treated as internal.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Fields)
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Validation builds a validation error listing the offending fields.
func Validation(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// --- Error Definitions ---
var (
	// Auth
	ErrEmailTaken         = newError(KindConflict, "User already exists")
	ErrInvalidCredentials = newError(KindAuth, "Invalid credentials")
	ErrInvalidToken       = newError(KindAuth, "Not authorized, token failed")
	ErrUserNotFound       = newError(KindNotFound, "User not found")
	ErrTrainersOnly       = newError(KindAuthz, "Access denied. Trainers only.")
	ErrAvatarNotSet       = newError(KindNotFound, "No avatar set")
	ErrStorageUnavailable = newError(KindInternal, "File storage is not available")

	// Trainer relationship
	ErrTrainerNotFound      = newError(KindNotFound, "Trainer not found")
	ErrAlreadyHasTrainer    = newError(KindConflict, "You already have an assigned trainer")
	ErrPendingRequestExists = newError(KindConflict, "You already have a pending trainer request")
	ErrRequestNotFound      = newError(KindNotFound, "Request not found or already processed")
	ErrClientNotFound       = newError(KindNotFound, "Client not found")
	ErrClientNotAssignable  = newError(KindValidation, "Can only assign regular users as clients")
	ErrClientTaken          = newError(KindConflict, "User is already assigned to another trainer")

	// Resources
	ErrWorkoutNotFound = newError(KindNotFound, "Workout not found")
	ErrMealNotFound    = newError(KindNotFound, "Meal not found")
	ErrWeightNotFound  = newError(KindNotFound, "Weight log not found")
	ErrGoalNotFound    = newError(KindNotFound, "Goal not found")
	ErrPlanNotFound    = newError(KindNotFound, "Plan not found")
	ErrPlanClient      = newError(KindNotFound, "Client not found or not assigned to you")
)
