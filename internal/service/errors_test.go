package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(ErrGoalNotFound))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("wrapped: %w", ErrEmailTaken)))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindValidation, KindOf(Validation(FieldError{Field: "name", Message: "is required"})))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Goal not found", ErrGoalNotFound.Error())
	err := Validation(FieldError{Field: "name", Message: "is required"})
	assert.Contains(t, err.Error(), "Validation failed")
	assert.Equal(t, "validation", err.Kind.String())
}
