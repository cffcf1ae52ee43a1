// Package httperr maps transport-level failures from hub HTTP calls onto
// the application's fetch error taxonomy.
package httperr

import (
	"context"
	stderrs "errors"
	"fmt"
	"net"
	"net/http"

	"github.com/olusolaa/hub-reconciler/internal/errors"
)

// Classify turns an error from an http.Client round trip into an AppError
// with the matching fetch code. The request context is consulted first so
// caller-initiated aborts are reported as cancellation, not transport noise.
func Classify(ctx context.Context, sourceLabel string, err error) error {
	if err == nil {
		return errors.New(errors.CodeInternal, fmt.Sprintf("unexpected nil error classifying fetch failure for source %s", sourceLabel))
	}

	if stderrs.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.CodeFetchTimeout,
			fmt.Sprintf("fetch from source '%s' exceeded its timeout ceiling", sourceLabel))
	}
	if stderrs.Is(err, context.Canceled) || ctx.Err() == context.Canceled {
		return errors.Wrap(err, errors.CodeFetchCancelled,
			fmt.Sprintf("fetch from source '%s' was cancelled", sourceLabel))
	}

	var netErr net.Error
	if stderrs.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(err, errors.CodeFetchTimeout,
			fmt.Sprintf("fetch from source '%s' timed out", sourceLabel))
	}

	return errors.Wrap(err, errors.CodeFetchTransport,
		fmt.Sprintf("transport failure fetching from source '%s'", sourceLabel))
}

// ClassifyStatus maps a non-2xx HTTP status onto the fetch taxonomy.
// Auth rejections are terminal; everything else is a transport fault the
// retry layer may take another run at.
func ClassifyStatus(sourceLabel string, status int) error {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return errors.New(errors.CodeFetchUnauthorized,
			fmt.Sprintf("source '%s' rejected the configured credentials (HTTP %d)", sourceLabel, status))
	}
	return errors.New(errors.CodeFetchTransport,
		fmt.Sprintf("source '%s' returned HTTP %d", sourceLabel, status))
}
