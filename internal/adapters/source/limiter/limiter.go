// Package limiter provides a process-wide rate limit on hub API calls. The
// local hub runs its HTTP daemon on embedded hardware and drops connections
// under concurrent load, so every fetcher waits on the shared limiter.
package limiter

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/olusolaa/hub-reconciler/internal/core/ports"
)

const (
	defaultRateLimitRPS = 2
	minRateLimitRPS     = 1
	maxRateLimitRPS     = 20
)

var (
	apiLimiter  *rate.Limiter
	limiterOnce sync.Once
)

func Initialize(rps int, logger ports.Logger) {
	limiterOnce.Do(func() {
		limitValue := defaultRateLimitRPS
		if rps >= minRateLimitRPS && rps <= maxRateLimitRPS {
			limitValue = rps
		} else if rps != 0 {
			logger.Warnf(context.Background(), "Invalid hub API RPS configured (%d), using default %d RPS. Valid range: %d-%d.", rps, defaultRateLimitRPS, minRateLimitRPS, maxRateLimitRPS)
		}
		apiLimiter = rate.NewLimiter(rate.Limit(limitValue), limitValue)
		logger.Infof(context.Background(), "Initialized global hub API rate limiter: %d RPS", limitValue)
	})
}

func Wait(ctx context.Context, logger ports.Logger) error {
	if apiLimiter == nil {
		logger.Errorf(ctx, nil, "Hub API rate limiter accessed before initialization, initializing with default")
		Initialize(defaultRateLimitRPS, logger)
	}
	err := apiLimiter.Wait(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warnf(ctx, "Error waiting for hub API rate limiter: %v", err)
		}
		return err
	}
	return nil
}
