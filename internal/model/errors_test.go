package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")

	tests := []struct {
		name   string
		err    error
		kind   error
		others []error
	}{
		{
			name:   "validation",
			err:    fmt.Errorf("failed to create item: %w", NewValidationError("itemName", "Item name is required")),
			kind:   ErrValidation,
			others: []error{ErrConflict, ErrStorage, ErrUnauthorized},
		},
		{
			name:   "conflict",
			err:    &ConflictError{Field: "username", Value: "alice"},
			kind:   ErrConflict,
			others: []error{ErrValidation, ErrStorage},
		},
		{
			name:   "storage",
			err:    &StorageError{Op: "connect", Err: cause},
			kind:   ErrStorage,
			others: []error{ErrConfiguration, ErrNotFound},
		},
		{
			name:   "configuration",
			err:    &ConfigurationError{Reason: "missing scheme"},
			kind:   ErrConfiguration,
			others: []error{ErrStorage},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tt.err, tt.kind)
			for _, other := range tt.others {
				assert.NotErrorIs(t, tt.err, other)
			}
		})
	}
}

func TestStorageError_UnwrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := &StorageError{Op: "connect", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "storage connect: connection refused", err.Error())
}

func TestConflictError_Message(t *testing.T) {
	t.Parallel()

	err := &ConflictError{Field: "email", Value: "a@campus.edu"}
	assert.Equal(t, `email "a@campus.edu" is already taken`, err.Error())
}
