package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("nil in, nil out", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("plain error gets code and chain", func(t *testing.T) {
		cause := fmt.Errorf("connection refused")
		err := Wrap(cause, CodeFetchTransport, "fetch failed")

		require.NotNil(t, err)
		assert.Equal(t, CodeFetchTransport, err.Code)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "fetch failed")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("existing AppError passes through unchanged", func(t *testing.T) {
		original := New(CodeFetchTimeout, "deadline hit")
		err := Wrap(original, CodeInternal, "other message")

		assert.Same(t, original, err)
		assert.Equal(t, CodeFetchTimeout, err.Code)
	})
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeNormalizeMalformed, GetCode(New(CodeNormalizeMalformed, "bad json")))
	assert.Equal(t, CodeUnknown, GetCode(fmt.Errorf("plain")))
	assert.Equal(t, CodeUnknown, GetCode(nil))

	t.Run("finds the code through wrapping", func(t *testing.T) {
		inner := New(CodeFetchEmpty, "empty body")
		outer := fmt.Errorf("fetching: %w", inner)
		assert.Equal(t, CodeFetchEmpty, GetCode(outer))
	})
}

func TestIs(t *testing.T) {
	err := New(CodeSchemaMapping, "unknown zone type")
	assert.True(t, Is(err, CodeSchemaMapping))
	assert.False(t, Is(err, CodeFetchTimeout))
	assert.False(t, Is(stderrs.New("plain"), CodeSchemaMapping))
}

func TestGetUserFacingMessage(t *testing.T) {
	t.Run("user facing error surfaces its message", func(t *testing.T) {
		err := NewUserFacing(CodeReconciliationFailed, "2 diffs found", "Inspect the artifacts.")
		msg, suggestion, ok := GetUserFacingMessage(err)
		assert.True(t, ok)
		assert.Equal(t, "2 diffs found", msg)
		assert.Equal(t, "Inspect the artifacts.", suggestion)
	})

	t.Run("walks the chain to a user facing cause", func(t *testing.T) {
		inner := NewUserFacing(CodeConfigValidation, "missing token", "Set RECON_TOKEN.")
		outer := &AppError{Code: CodeInternal, Message: "bootstrap failed", WrappedError: inner}

		msg, _, ok := GetUserFacingMessage(outer)
		assert.True(t, ok)
		assert.Equal(t, "missing token", msg)
	})

	t.Run("falls back for internal errors", func(t *testing.T) {
		_, _, ok := GetUserFacingMessage(New(CodeInternal, "nil pointer"))
		assert.False(t, ok)
	})
}

func TestWrapUserFacing(t *testing.T) {
	inner := New(CodeFetchTransport, "tcp reset")
	err := WrapUserFacing(inner, CodeReconciliationFailed, "run failed", "Retry later.")

	require.NotNil(t, err)
	assert.True(t, err.IsUserFacing)
	assert.Equal(t, CodeReconciliationFailed, err.Code)
	assert.NotEmpty(t, err.InternalDetails)
	assert.ErrorIs(t, err, inner)
}
