package ports

import (
	"context"

	"github.com/olusolaa/hub-reconciler/internal/core/domain"
)

// Fetcher retrieves one resource type from one configured source. On
// success the returned RawResponse carries the body exactly as received,
// uninterpreted. Implementations must honor ctx and must not retry
// internally; retry policy belongs to the orchestration layer.
type Fetcher interface {
	Label() string
	Kind() domain.SourceKind
	Fetch(ctx context.Context, resourceType domain.ResourceType) (domain.RawResponse, error)
}

// Mapper rewrites a raw response body into the v1 document shape shared by
// all sources, so canonicalization compares like with like. Sources that
// already speak the v1 schema use an identity mapper.
type Mapper interface {
	Map(resourceType domain.ResourceType, body []byte) ([]byte, error)
}
