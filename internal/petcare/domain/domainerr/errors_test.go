package domainerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"petcare/internal/petcare/domain/domainerr"
)

func TestCategories(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category error
	}{
		{"аргумент", domainerr.InvalidArgument("field %q", "name"), domainerr.ErrInvalidArgument},
		{"состояние", domainerr.InvalidState("not pending"), domainerr.ErrInvalidState},
		{"операция", domainerr.InvalidOperation("currency mismatch"), domainerr.ErrInvalidOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("use case: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.category)
			assert.True(t, domainerr.IsClientError(wrapped))
			assert.False(t, domainerr.IsRetryable(wrapped))
		})
	}

	t.Run("сообщение содержит описание", func(t *testing.T) {
		err := domainerr.InvalidArgument("field %q", "name")
		assert.Equal(t, `invalid argument: field "name"`, err.Error())
	})
}

func TestIsRetryable(t *testing.T) {
	conflict := fmt.Errorf("save: %w", domainerr.ErrConcurrencyConflict)

	assert.True(t, domainerr.IsRetryable(conflict))
	assert.False(t, domainerr.IsClientError(conflict))
	assert.False(t, domainerr.IsRetryable(errors.New("io")))
	assert.True(t, domainerr.IsClientError(domainerr.ErrNotFound))
}
