package httperr

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/hub-reconciler/internal/errors"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	ctx := context.Background()

	t.Run("deadline exceeded", func(t *testing.T) {
		err := Classify(ctx, "cloud", fmt.Errorf("Get \"x\": %w", context.DeadlineExceeded))
		assert.Equal(t, errors.CodeFetchTimeout, errors.GetCode(err))
	})

	t.Run("cancellation via error chain", func(t *testing.T) {
		err := Classify(ctx, "cloud", fmt.Errorf("Get \"x\": %w", context.Canceled))
		assert.Equal(t, errors.CodeFetchCancelled, errors.GetCode(err))
	})

	t.Run("cancellation via context state", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := Classify(cancelled, "cloud", fmt.Errorf("some transport error"))
		assert.Equal(t, errors.CodeFetchCancelled, errors.GetCode(err))
	})

	t.Run("net timeout", func(t *testing.T) {
		err := Classify(ctx, "local", fmt.Errorf("dial: %w", timeoutError{}))
		assert.Equal(t, errors.CodeFetchTimeout, errors.GetCode(err))
	})

	t.Run("anything else is transport", func(t *testing.T) {
		err := Classify(ctx, "local", fmt.Errorf("connection refused"))
		assert.Equal(t, errors.CodeFetchTransport, errors.GetCode(err))
	})

	t.Run("source label appears in the message", func(t *testing.T) {
		err := Classify(ctx, "local", fmt.Errorf("connection refused"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "local")
	})
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   errors.Code
	}{
		{http.StatusUnauthorized, errors.CodeFetchUnauthorized},
		{http.StatusForbidden, errors.CodeFetchUnauthorized},
		{http.StatusNotFound, errors.CodeFetchTransport},
		{http.StatusInternalServerError, errors.CodeFetchTransport},
		{http.StatusBadGateway, errors.CodeFetchTransport},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("HTTP %d", tt.status), func(t *testing.T) {
			err := ClassifyStatus("cloud", tt.status)
			assert.Equal(t, tt.want, errors.GetCode(err))
		})
	}
}
