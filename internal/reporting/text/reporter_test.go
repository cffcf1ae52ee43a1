package text

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/hub-reconciler/internal/core/domain"
	"github.com/olusolaa/hub-reconciler/internal/errors"
	"github.com/olusolaa/hub-reconciler/internal/log"
)

func sampleResults() []domain.ComparisonResult {
	return []domain.ComparisonResult{
		{
			ResourceType: domain.ResourceZones,
			SourceA:      "cloud", SourceB: "local",
			Status: domain.StatusMatch, Identical: true,
		},
		{
			ResourceType: domain.ResourceZones,
			SourceA:      "cloud", SourceB: "gh",
			Status: domain.StatusDiff,
			DiffLines: []domain.DiffLine{
				{Kind: domain.DiffContext, Content: "  \"id\": 3,\n"},
				{Kind: domain.DiffRemoved, Content: "  \"setpoint\": 21,\n"},
				{Kind: domain.DiffAdded, Content: "  \"setpoint\": 22,\n"},
			},
			Unified: "--- cloud\n+++ gh\n",
		},
		{
			ResourceType: domain.ResourceIssues,
			SourceA:      "local", SourceB: "gh",
			Status: domain.StatusNotRun,
			Error:  errors.New(errors.CodeFetchTimeout, "source 'gh' exceeded its timeout ceiling"),
		},
		{
			ResourceType: domain.ResourceDevices,
			SourceA:      "cloud", SourceB: "ghost",
			Status: domain.StatusError,
			Error:  errors.New(errors.CodeConfigValidation, "pair references unknown source label 'ghost'"),
		},
	}
}

func renderReport(t *testing.T, results []domain.ComparisonResult) string {
	t.Helper()
	color.NoColor = true

	var buf bytes.Buffer
	r := &Reporter{config: Config{NoColor: true}, writer: &buf, logger: log.NewNop()}
	require.NoError(t, r.Report(context.Background(), results))
	return buf.String()
}

func TestReporter_Report(t *testing.T) {
	out := renderReport(t, sampleResults())

	assert.Contains(t, out, "Reconciliation Report")
	assert.Contains(t, out, "[MATCH]")
	assert.Contains(t, out, "[DIFF]")
	assert.Contains(t, out, "[NOT RUN]")
	assert.Contains(t, out, "[ERROR]")

	assert.Contains(t, out, "cloud--local")
	assert.Contains(t, out, "cloud--gh")
	assert.Contains(t, out, "timeout ceiling")
	assert.Contains(t, out, "ghost")

	assert.Contains(t, out, "Total Comparisons:")
	assert.Contains(t, out, "4")
}

func TestReporter_DiffExcerpt(t *testing.T) {
	out := renderReport(t, sampleResults())

	// excerpt shows changed lines with +/- markers, context excluded
	assert.Contains(t, out, "2 line(s) differ")
	assert.Contains(t, out, `-  "setpoint": 21,`)
	assert.Contains(t, out, `+  "setpoint": 22,`)
	assert.NotContains(t, out, `"id": 3`)
}

func TestReporter_EmptyResults(t *testing.T) {
	out := renderReport(t, nil)
	assert.Contains(t, out, "No comparisons configured or run.")
}

func TestReporter_LongDiffTruncated(t *testing.T) {
	lines := make([]domain.DiffLine, 0, 10)
	for i := 0; i < 10; i++ {
		lines = append(lines, domain.DiffLine{Kind: domain.DiffAdded, Content: "  \"field\": true,\n"})
	}
	out := renderReport(t, []domain.ComparisonResult{{
		ResourceType: domain.ResourceZones,
		SourceA:      "cloud", SourceB: "local",
		Status:    domain.StatusDiff,
		DiffLines: lines,
	}})

	assert.Contains(t, out, "10 line(s) differ")
	assert.Contains(t, out, "(6 more)")
}

func TestReporter_CancelledContext(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	r := &Reporter{writer: &buf, logger: log.NewNop()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Report(ctx, sampleResults())
	require.Error(t, err)
}
