package text

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/olusolaa/hub-reconciler/internal/core/domain"
	"github.com/olusolaa/hub-reconciler/internal/core/ports"
	apperrors "github.com/olusolaa/hub-reconciler/internal/errors"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func isTerminal(f *os.File) bool {
	stat, _ := f.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, results []domain.ComparisonResult) error {
	if len(results) == 0 {
		fmt.Fprintln(r.writer, "No comparisons configured or run.")
		return nil
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].ResourceType != results[j].ResourceType {
			return results[i].ResourceType < results[j].ResourceType
		}
		return results[i].PairKey() < results[j].PairKey()
	})

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	magenta := color.New(color.FgMagenta).SprintFunc()

	fmt.Fprintln(tw, "Reconciliation Report")
	fmt.Fprintln(tw, "=====================")
	fmt.Fprintln(tw, "Status\tResource\tPair\tDetails")
	fmt.Fprintln(tw, "------\t--------\t----\t-------")

	matchCount := 0
	diffCount := 0
	notRunCount := 0
	errorCount := 0

	for _, res := range results {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		statusStr := ""
		details := ""

		switch res.Status {
		case domain.StatusMatch:
			matchCount++
			statusStr = green("[MATCH]")
			details = "Canonical documents are identical."
		case domain.StatusDiff:
			diffCount++
			statusStr = red("[DIFF]")
			details = r.formatDiffDetails(res.DiffLines)
		case domain.StatusNotRun:
			notRunCount++
			statusStr = yellow("[NOT RUN]")
			details = fmt.Sprintf("Skipped: %v", res.Error)
		case domain.StatusError:
			errorCount++
			statusStr = magenta("[ERROR]")
			details = fmt.Sprintf("Comparison failed: %v", res.Error)
			if appErr := (*apperrors.AppError)(nil); errors.As(res.Error, &appErr) {
				if appErr.IsUserFacing {
					details += fmt.Sprintf(" (%s)", appErr.Message)
				}
			}
		default:
			statusStr = "[UNKNOWN]"
			details = "Unknown comparison status."
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", statusStr, res.ResourceType, res.PairKey(), details)
	}

	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Total Comparisons:\t%d\n", len(results))
	fmt.Fprintf(tw, "Match:\t%s\n", green(matchCount))
	fmt.Fprintf(tw, "Diff:\t%s\n", red(diffCount))
	fmt.Fprintf(tw, "Not Run:\t%s\n", yellow(notRunCount))
	fmt.Fprintf(tw, "Errors:\t%s\n", magenta(errorCount))

	return nil
}

// formatDiffDetails collapses the changed lines into a one-row excerpt;
// the full unified diff lives in the artifact directory.
func (r *Reporter) formatDiffDetails(lines []domain.DiffLine) string {
	const maxShown = 4

	changed := make([]string, 0, maxShown)
	total := 0
	for _, line := range lines {
		if line.Kind == domain.DiffContext {
			continue
		}
		total++
		if len(changed) < maxShown {
			marker := "+"
			if line.Kind == domain.DiffRemoved {
				marker = "-"
			}
			changed = append(changed, marker+strings.TrimRight(line.Content, "\n"))
		}
	}

	if total == 0 {
		return "Documents differ but no line changes recorded."
	}
	excerpt := strings.Join(changed, " ")
	if total > maxShown {
		excerpt += fmt.Sprintf(" ... (%d more)", total-maxShown)
	}
	return fmt.Sprintf("%d line(s) differ: %s", total, r.truncate(excerpt))
}

func (r *Reporter) truncate(s string) string {
	const maxLen = 120
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
