package ports

import (
	"context"

	"github.com/olusolaa/hub-reconciler/internal/core/domain"
)

// ArtifactStore persists per-run intermediate outputs for later inspection.
// Writes are keyed by resource type and source label; concurrent runs over
// different resource types never collide.
type ArtifactStore interface {
	SaveRaw(ctx context.Context, raw domain.RawResponse) error
	SaveCanonical(ctx context.Context, doc domain.CanonicalDocument) error
	SaveDiff(ctx context.Context, result domain.ComparisonResult) error
}
