package service

import (
	"alcyxob/fittrack/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC)

// freezeTime pins timeNow for the duration of the test.
func freezeTime(t *testing.T, now time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = prev })
}

func register(t *testing.T, e *testEnv, name, email string, role domain.Role) *domain.User {
	t.Helper()
	session, err := e.auth.Register(context.Background(), RegisterInput{
		Name:     name,
		Email:    email,
		Password: "secret123",
		Role:     role,
	})
	require.NoError(t, err)
	return session.User
}

func ptr[T any](v T) *T { return &v }
