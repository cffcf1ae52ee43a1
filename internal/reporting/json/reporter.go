package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/olusolaa/hub-reconciler/internal/core/domain"
	"github.com/olusolaa/hub-reconciler/internal/core/ports"
)

const ReporterTypeJSON = "json"

type Config struct{}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

type jsonReport struct {
	Summary jsonSummary      `json:"summary"`
	Results []jsonResultItem `json:"results"`
}

type jsonSummary struct {
	TotalComparisons int `json:"total_comparisons"`
	Match            int `json:"match"`
	Diff             int `json:"diff"`
	NotRun           int `json:"not_run"`
	Errors           int `json:"errors"`
}

type jsonResultItem struct {
	Status       domain.ComparisonStatus `json:"status"`
	ResourceType domain.ResourceType     `json:"resource_type"`
	SourceA      string                  `json:"source_a"`
	SourceB      string                  `json:"source_b"`
	Identical    bool                    `json:"identical"`
	DiffLines    []jsonDiffLine          `json:"diff_lines,omitempty"`
	ErrorMessage string                  `json:"error_message,omitempty"`
}

type jsonDiffLine struct {
	Kind    domain.DiffKind `json:"kind"`
	Content string          `json:"content"`
}

func (r *Reporter) Report(ctx context.Context, results []domain.ComparisonResult) error {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].ResourceType != results[j].ResourceType {
			return results[i].ResourceType < results[j].ResourceType
		}
		return results[i].PairKey() < results[j].PairKey()
	})

	report := jsonReport{
		Summary: jsonSummary{TotalComparisons: len(results)},
		Results: make([]jsonResultItem, 0, len(results)),
	}

	for _, res := range results {
		if ctx.Err() != nil {
			r.logger.Warnf(ctx, "JSON report generation cancelled.")
			return ctx.Err()
		}

		switch res.Status {
		case domain.StatusMatch:
			report.Summary.Match++
		case domain.StatusDiff:
			report.Summary.Diff++
		case domain.StatusNotRun:
			report.Summary.NotRun++
		case domain.StatusError:
			report.Summary.Errors++
		}

		item := jsonResultItem{
			Status:       res.Status,
			ResourceType: res.ResourceType,
			SourceA:      res.SourceA,
			SourceB:      res.SourceB,
			Identical:    res.Identical,
		}

		if res.Error != nil {
			item.ErrorMessage = res.Error.Error()
		}

		for _, line := range res.DiffLines {
			if line.Kind == domain.DiffContext {
				continue
			}
			item.DiffLines = append(item.DiffLines, jsonDiffLine{Kind: line.Kind, Content: line.Content})
		}

		report.Results = append(report.Results, item)
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(report); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}

	r.logger.Debugf(ctx, "JSON report successfully generated.")
	return nil
}
