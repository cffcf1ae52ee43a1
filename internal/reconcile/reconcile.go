// Package reconcile computes line-oriented structural diffs between
// canonical documents fetched from two sources.
package reconcile

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/olusolaa/hub-reconciler/internal/core/domain"
)

// Compare diffs two canonical documents for the same resource type. Pure:
// no side effects, inputs are never mutated. Identical is symmetric in its
// arguments even though the diff direction is not.
func Compare(a, b domain.CanonicalDocument) domain.ComparisonResult {
	result := domain.ComparisonResult{
		ResourceType: a.ResourceType,
		SourceA:      a.SourceLabel,
		SourceB:      b.SourceLabel,
	}

	edits := myers.ComputeEdits(span.URIFromPath(a.SourceLabel), a.Text, b.Text)
	if len(edits) == 0 {
		result.Status = domain.StatusMatch
		result.Identical = true
		return result
	}

	unified := gotextdiff.ToUnified(a.SourceLabel, b.SourceLabel, a.Text, edits)
	result.Status = domain.StatusDiff
	result.Unified = fmt.Sprint(unified)
	result.DiffLines = flattenHunks(unified)
	return result
}

func flattenHunks(u gotextdiff.Unified) []domain.DiffLine {
	var lines []domain.DiffLine
	for _, hunk := range u.Hunks {
		for _, line := range hunk.Lines {
			dl := domain.DiffLine{Content: line.Content}
			switch line.Kind {
			case gotextdiff.Insert:
				dl.Kind = domain.DiffAdded
			case gotextdiff.Delete:
				dl.Kind = domain.DiffRemoved
			default:
				dl.Kind = domain.DiffContext
			}
			lines = append(lines, dl)
		}
	}
	return lines
}
