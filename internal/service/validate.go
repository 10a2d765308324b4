package service

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is shared with the HTTP binding layer's tag vocabulary so both
// layers agree on formats such as "email".
var validate = validator.New()

// timeNow is replaced in tests.
var timeNow = func() time.Time { return time.Now().UTC() }

// fieldErrors accumulates per-field problems of one input.
type fieldErrors []FieldError

func (f *fieldErrors) add(field, msg string) {
	*f = append(*f, FieldError{Field: field, Message: msg})
}

// check adds msg for field when ok is false.
func (f *fieldErrors) check(ok bool, field, msg string) {
	if !ok {
		f.add(field, msg)
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return Validation(f...)
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

func nonNegative(p *float64) bool {
	return p == nil || *p >= 0
}
