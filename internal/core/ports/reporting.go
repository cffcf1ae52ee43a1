package ports

import (
	"context"

	"github.com/olusolaa/hub-reconciler/internal/core/domain"
)

type Reporter interface {
	Report(ctx context.Context, results []domain.ComparisonResult) error
}
