package reconcile

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportError(t *testing.T) {
	t.Run("Status", func(t *testing.T) {
		err := &TransportError{Method: "POST", Path: "/admin/products.json", StatusCode: 422, Body: `{"errors":"title"}`}
		assert.Equal(t, `POST /admin/products.json: status 422: {"errors":"title"}`, err.Error())
		assert.True(t, IsTransport(err))
		assert.False(t, IsValidation(err))
	})

	t.Run("Network", func(t *testing.T) {
		err := &TransportError{Method: "GET", Path: "/admin/products.json", Err: io.ErrUnexpectedEOF}
		wrapped := fmt.Errorf("pull: %w", err)
		assert.True(t, IsTransport(wrapped))
		assert.True(t, errors.Is(wrapped, io.ErrUnexpectedEOF))

		var te *TransportError
		assert.True(t, errors.As(wrapped, &te))
		assert.Equal(t, "GET", te.Method)
	})
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("option2", "unresolvable numeric attribute abbreviation %q", "big")
	assert.Equal(t, `validation failed for option2: unresolvable numeric attribute abbreviation "big"`, err.Error())
	assert.True(t, IsValidation(fmt.Errorf("variant 5: %w", err)))
	assert.False(t, IsTransport(err))

	noField := &ValidationError{Message: "empty"}
	assert.Equal(t, "validation failed: empty", noField.Error())
}
