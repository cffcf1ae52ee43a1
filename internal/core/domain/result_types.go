package domain

type ComparisonStatus string

const (
	StatusMatch  ComparisonStatus = "MATCH"
	StatusDiff   ComparisonStatus = "DIFF"
	StatusNotRun ComparisonStatus = "NOT_RUN"
	StatusError  ComparisonStatus = "ERROR"
)

type DiffKind string

const (
	DiffAdded   DiffKind = "added"
	DiffRemoved DiffKind = "removed"
	DiffContext DiffKind = "context"
)

type DiffLine struct {
	Kind    DiffKind
	Content string
}

// ComparisonResult records the outcome of reconciling one configured pair
// of sources for a resource type. Created once per pair per run and never
// mutated afterwards. Both canonical documents must derive from fetches
// triggered within the same run.
type ComparisonResult struct {
	ResourceType ResourceType
	SourceA      string
	SourceB      string
	Status       ComparisonStatus
	Identical    bool
	DiffLines    []DiffLine
	Unified      string
	Error        error
}

// PairKey renders the stable "a--b" identifier used for artifact naming
// and report ordering.
func (r ComparisonResult) PairKey() string {
	return r.SourceA + "--" + r.SourceB
}
