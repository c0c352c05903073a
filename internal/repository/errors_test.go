package repository_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Harshakar-official/storefront/internal/repository"
)

func TestIsNotFound(t *testing.T) {
	notFound := &repository.NotFoundError{Resource: "order", Key: "id", Value: "abc"}

	testCases := map[string]struct {
		err      error
		expected bool
	}{
		"should match a bare NotFoundError": {
			err:      notFound,
			expected: true,
		},
		"should match a wrapped NotFoundError": {
			err:      fmt.Errorf("lookup: %w", notFound),
			expected: true,
		},
		"should not match a ConflictError": {
			err:      &repository.ConflictError{Resource: "user", Key: "email", Value: "a@b.c"},
			expected: false,
		},
		"should not match an unrelated error": {
			err:      errors.New("connection refused"),
			expected: false,
		},
		"should not match nil": {
			err:      nil,
			expected: false,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, repository.IsNotFound(tc.err))
		})
	}
}

func TestIsConflict(t *testing.T) {
	conflict := &repository.ConflictError{Resource: "user", Key: "email", Value: "a@b.c"}

	assert.True(t, repository.IsConflict(conflict))
	assert.True(t, repository.IsConflict(fmt.Errorf("create: %w", conflict)))
	assert.False(t, repository.IsConflict(&repository.NotFoundError{Resource: "user", Key: "id", Value: "x"}))
	assert.False(t, repository.IsConflict(nil))
}

func TestErrorMessages(t *testing.T) {
	notFound := &repository.NotFoundError{Resource: "cart entry", Key: "id", Value: "42"}
	assert.Equal(t, "cart entry with id 42 not found", notFound.Error())

	conflict := &repository.ConflictError{Resource: "user", Key: "email", Value: "a@b.c"}
	assert.Equal(t, "user with email a@b.c already exists", conflict.Error())
}
