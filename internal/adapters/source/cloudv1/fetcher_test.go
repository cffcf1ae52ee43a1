package cloudv1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/hub-reconciler/internal/core/domain"
	"github.com/olusolaa/hub-reconciler/internal/errors"
	"github.com/olusolaa/hub-reconciler/internal/log"
)

func TestNewFetcher(t *testing.T) {
	logger := log.NewNop()
	clock := clockwork.NewFakeClock()

	t.Run("requires a token", func(t *testing.T) {
		_, err := NewFetcher(Config{Label: "cloud"}, clock, logger)
		require.Error(t, err)
		assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
	})

	t.Run("applies defaults", func(t *testing.T) {
		f, err := NewFetcher(Config{Label: "cloud", Token: "tok"}, clock, logger)
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, f.config.BaseURL)
		assert.Equal(t, DefaultTimeout, f.config.Timeout)
		assert.Equal(t, "cloud", f.Label())
		assert.Equal(t, domain.SourceKindCloudV1, f.Kind())
	})

	t.Run("normalizes base url to a trailing slash", func(t *testing.T) {
		f, err := NewFetcher(Config{Label: "cloud", Token: "tok", BaseURL: "http://example.test/v1"}, clock, logger)
		require.NoError(t, err)
		assert.Equal(t, "http://example.test/v1/", f.config.BaseURL)
	})
}

func TestFetcher_Fetch(t *testing.T) {
	logger := log.NewNop()
	clock := clockwork.NewFakeClock()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var gotAuth, gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotPath = r.URL.Path
			w.Write([]byte(`[{"id":3,"name":"Lounge"}]`))
		}))
		defer srv.Close()

		f, err := NewFetcher(Config{Label: "cloud", Token: "tok", BaseURL: srv.URL}, clock, logger)
		require.NoError(t, err)

		raw, err := f.Fetch(ctx, domain.ResourceZones)
		require.NoError(t, err)

		assert.Equal(t, "Bearer tok", gotAuth)
		assert.Equal(t, "/zones", gotPath)
		assert.Equal(t, "cloud", raw.SourceLabel)
		assert.Equal(t, domain.ResourceZones, raw.ResourceType)
		assert.JSONEq(t, `[{"id":3,"name":"Lounge"}]`, string(raw.Body))
		assert.Equal(t, clock.Now(), raw.CapturedAt)
	})

	t.Run("rejects unknown resource type", func(t *testing.T) {
		f, err := NewFetcher(Config{Label: "cloud", Token: "tok"}, clock, logger)
		require.NoError(t, err)

		_, err = f.Fetch(ctx, domain.ResourceType("thermostats"))
		require.Error(t, err)
		assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
	})

	t.Run("auth rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		f, err := NewFetcher(Config{Label: "cloud", Token: "bad", BaseURL: srv.URL}, clock, logger)
		require.NoError(t, err)

		_, err = f.Fetch(ctx, domain.ResourceIssues)
		require.Error(t, err)
		assert.Equal(t, errors.CodeFetchUnauthorized, errors.GetCode(err))
	})

	t.Run("server error is a transport fault", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		f, err := NewFetcher(Config{Label: "cloud", Token: "tok", BaseURL: srv.URL}, clock, logger)
		require.NoError(t, err)

		_, err = f.Fetch(ctx, domain.ResourceDevices)
		require.Error(t, err)
		assert.Equal(t, errors.CodeFetchTransport, errors.GetCode(err))
	})

	t.Run("empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		f, err := NewFetcher(Config{Label: "cloud", Token: "tok", BaseURL: srv.URL}, clock, logger)
		require.NoError(t, err)

		_, err = f.Fetch(ctx, domain.ResourceZones)
		require.Error(t, err)
		assert.Equal(t, errors.CodeFetchEmpty, errors.GetCode(err))
	})

	t.Run("timeout ceiling", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		f, err := NewFetcher(Config{Label: "cloud", Token: "tok", BaseURL: srv.URL, Timeout: 20 * time.Millisecond}, clock, logger)
		require.NoError(t, err)

		_, err = f.Fetch(ctx, domain.ResourceZones)
		require.Error(t, err)
		assert.Equal(t, errors.CodeFetchTimeout, errors.GetCode(err))
	})

	t.Run("cancellation", func(t *testing.T) {
		f, err := NewFetcher(Config{Label: "cloud", Token: "tok"}, clock, logger)
		require.NoError(t, err)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err = f.Fetch(cancelled, domain.ResourceZones)
		require.Error(t, err)
		assert.Equal(t, errors.CodeFetchCancelled, errors.GetCode(err))
	})

	t.Run("connection refused is a transport fault", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		f, err := NewFetcher(Config{Label: "cloud", Token: "tok", BaseURL: srv.URL}, clock, logger)
		require.NoError(t, err)

		_, err = f.Fetch(ctx, domain.ResourceZones)
		require.Error(t, err)
		assert.Equal(t, errors.CodeFetchTransport, errors.GetCode(err))
	})
}
