// Package retry decorates a Fetcher with exponential backoff. The core
// fetchers never retry on their own; resilience against transient cloud
// flakiness is an orchestration-layer choice, applied here in bootstrap
// when enabled by configuration.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/olusolaa/hub-reconciler/internal/core/domain"
	"github.com/olusolaa/hub-reconciler/internal/core/ports"
	"github.com/olusolaa/hub-reconciler/internal/errors"
)

type Config struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	MaxAttempts     int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialInterval time.Duration `yaml:"initial_interval" mapstructure:"initial_interval"`
	MaxInterval     time.Duration `yaml:"max_interval" mapstructure:"max_interval"`
}

func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		MaxAttempts:     3,
		InitialInterval: 2 * time.Second,
		MaxInterval:     30 * time.Second,
	}
}

type Fetcher struct {
	inner  ports.Fetcher
	config Config
	logger ports.Logger
}

// Wrap returns the inner fetcher unchanged when retries are disabled.
func Wrap(inner ports.Fetcher, cfg Config, logger ports.Logger) ports.Fetcher {
	if !cfg.Enabled {
		return inner
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Fetcher{
		inner:  inner,
		config: cfg,
		logger: logger.WithFields(map[string]any{"source": inner.Label(), "component": "retry"}),
	}
}

func (f *Fetcher) Label() string {
	return f.inner.Label()
}

func (f *Fetcher) Kind() domain.SourceKind {
	return f.inner.Kind()
}

func (f *Fetcher) Fetch(ctx context.Context, resourceType domain.ResourceType) (domain.RawResponse, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = f.config.InitialInterval
	bo.MaxInterval = f.config.MaxInterval

	attempt := 0
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(f.config.MaxAttempts-1)), ctx)

	return backoff.RetryWithData(func() (domain.RawResponse, error) {
		attempt++
		raw, err := f.inner.Fetch(ctx, resourceType)
		if err == nil {
			return raw, nil
		}
		if !retryable(err) {
			return domain.RawResponse{}, backoff.Permanent(err)
		}
		f.logger.Warnf(ctx, "Fetch attempt %d/%d for %s failed, will retry: %v",
			attempt, f.config.MaxAttempts, resourceType, err)
		return domain.RawResponse{}, err
	}, policy)
}

// Only transport faults and timeouts are worth another attempt; auth
// rejections and empty bodies will not improve, and cancellation must
// propagate immediately.
func retryable(err error) bool {
	switch errors.GetCode(err) {
	case errors.CodeFetchTransport, errors.CodeFetchTimeout:
		return true
	}
	return false
}
