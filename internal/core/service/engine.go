package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/hub-reconciler/internal/canonical"
	"github.com/olusolaa/hub-reconciler/internal/config"
	"github.com/olusolaa/hub-reconciler/internal/core/domain"
	"github.com/olusolaa/hub-reconciler/internal/core/ports"
	"github.com/olusolaa/hub-reconciler/internal/errors"
	"github.com/olusolaa/hub-reconciler/internal/reconcile"
)

type ReconciliationEngine struct {
	registry    *ComponentRegistry
	reporter    ports.Reporter
	store       ports.ArtifactStore
	logger      ports.Logger
	appConfig   *config.Config
	concurrency int
}

func NewReconciliationEngine(
	registry *ComponentRegistry,
	reporter ports.Reporter,
	store ports.ArtifactStore,
	logger ports.Logger,
	appConfig *config.Config,
	concurrency int,
) (*ReconciliationEngine, error) {
	if concurrency <= 0 {
		concurrency = 3
	}
	if registry == nil {
		return nil, errors.New(errors.CodeConfigValidation, "component registry cannot be nil")
	}
	if reporter == nil {
		return nil, errors.New(errors.CodeConfigValidation, "reporter cannot be nil")
	}
	if store == nil {
		return nil, errors.New(errors.CodeConfigValidation, "artifact store cannot be nil")
	}

	return &ReconciliationEngine{
		registry:    registry,
		reporter:    reporter,
		store:       store,
		logger:      logger,
		appConfig:   appConfig,
		concurrency: concurrency,
	}, nil
}

// Run reconciles every configured resource type. Types are independent and
// run concurrently up to the configured limit; within one type the fetches
// are sequential so all captures land inside one narrow window of hub
// state. A fetch or normalize failure poisons only the pairs that
// reference that source.
func (e *ReconciliationEngine) Run(ctx context.Context) error {
	resourceTypes := e.appConfig.GetResourceTypes()
	if len(resourceTypes) == 0 {
		return errors.NewUserFacing(errors.CodeConfigValidation,
			"no resource types configured for reconciliation",
			"Please define resources in the configuration file.")
	}
	e.logger.Infof(ctx, "Starting reconciliation run over %d resource type(s)", len(resourceTypes))

	var (
		finalResults []domain.ComparisonResult
		resultsMutex sync.Mutex
	)

	g, childCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, resourceType := range resourceTypes {
		resourceType := resourceType
		g.Go(func() error {
			if childCtx.Err() != nil {
				return childCtx.Err()
			}
			results := e.reconcileType(childCtx, resourceType)
			resultsMutex.Lock()
			finalResults = append(finalResults, results...)
			resultsMutex.Unlock()
			return childCtx.Err()
		})
	}

	if runErr := g.Wait(); runErr != nil {
		e.logger.Warnf(ctx, "Reconciliation workflow cancelled: %v", runErr)
		if len(finalResults) > 0 {
			if reportErr := e.reporter.Report(ctx, finalResults); reportErr != nil {
				e.logger.Errorf(ctx, reportErr, "failed to report partial results after cancellation")
			}
		}
		return runErr
	}

	e.logger.Infof(ctx, "Reconciliation workflow completed, reporting %d result(s)", len(finalResults))
	if reportErr := e.reporter.Report(ctx, finalResults); reportErr != nil {
		return errors.Wrap(reportErr, errors.CodeInternal, "failed to generate final report")
	}

	return e.verdict(finalResults)
}

// reconcileType fetches each referenced source in config order, normalizes
// what it got, then evaluates the configured pairs. Fetch and normalize
// errors are captured per source, never returned: the remaining pairs must
// still run.
func (e *ReconciliationEngine) reconcileType(ctx context.Context, resourceType domain.ResourceType) []domain.ComparisonResult {
	log := e.logger.WithFields(map[string]any{"resource_type": resourceType})
	labels := e.appConfig.SourceLabelsForType(resourceType)
	log.Debugf(ctx, "Reconciling across sources: %v", labels)

	docs := make(map[string]domain.CanonicalDocument, len(labels))
	failures := make(map[string]error)

	for _, label := range labels {
		if ctx.Err() != nil {
			failures[label] = errors.Wrap(ctx.Err(), errors.CodeFetchCancelled, "run cancelled")
			continue
		}
		doc, err := e.captureSource(ctx, resourceType, label)
		if err != nil {
			log.Errorf(ctx, err, "Source '%s' failed, dependent comparisons will not run", label)
			failures[label] = err
			continue
		}
		docs[label] = doc
	}

	pairs := e.appConfig.GetPairsForType(resourceType)
	results := make([]domain.ComparisonResult, 0, len(pairs))
	for _, pair := range pairs {
		results = append(results, e.evaluatePair(ctx, resourceType, pair, docs, failures))
	}
	return results
}

// captureSource runs the fetch-map-normalize chain for one source and
// persists each intermediate artifact. Artifact write failures are logged
// and do not poison the comparison.
func (e *ReconciliationEngine) captureSource(ctx context.Context, resourceType domain.ResourceType, label string) (domain.CanonicalDocument, error) {
	fetcher, err := e.registry.GetFetcher(label)
	if err != nil {
		return domain.CanonicalDocument{}, err
	}

	raw, err := fetcher.Fetch(ctx, resourceType)
	if err != nil {
		return domain.CanonicalDocument{}, err
	}
	e.logger.Debugf(ctx, "Captured %d bytes of %s from '%s' at %s",
		len(raw.Body), resourceType, label, raw.CapturedAt.Format("15:04:05"))
	if saveErr := e.store.SaveRaw(ctx, raw); saveErr != nil {
		e.logger.Warnf(ctx, "Failed to persist raw artifact for '%s': %v", label, saveErr)
	}

	body := raw.Body
	if mapper := e.registry.GetMapper(label); mapper != nil {
		body, err = mapper.Map(resourceType, raw.Body)
		if err != nil {
			return domain.CanonicalDocument{}, err
		}
	}

	text, err := canonical.Normalize(body)
	if err != nil {
		return domain.CanonicalDocument{}, err
	}

	doc := domain.CanonicalDocument{
		SourceLabel:  label,
		ResourceType: resourceType,
		Text:         text,
	}
	if saveErr := e.store.SaveCanonical(ctx, doc); saveErr != nil {
		e.logger.Warnf(ctx, "Failed to persist canonical artifact for '%s': %v", label, saveErr)
	}
	return doc, nil
}

func (e *ReconciliationEngine) evaluatePair(
	ctx context.Context,
	resourceType domain.ResourceType,
	pair config.PairConfig,
	docs map[string]domain.CanonicalDocument,
	failures map[string]error,
) domain.ComparisonResult {
	for _, label := range []string{pair.A, pair.B} {
		if cause, failed := failures[label]; failed {
			return domain.ComparisonResult{
				ResourceType: resourceType,
				SourceA:      pair.A,
				SourceB:      pair.B,
				Status:       domain.StatusNotRun,
				Error:        cause,
			}
		}
	}

	docA, okA := docs[pair.A]
	docB, okB := docs[pair.B]
	if !okA || !okB {
		// A pair label that neither fetched nor failed means the pair
		// references an unconfigured source.
		missing := pair.A
		if okA {
			missing = pair.B
		}
		return domain.ComparisonResult{
			ResourceType: resourceType,
			SourceA:      pair.A,
			SourceB:      pair.B,
			Status:       domain.StatusError,
			Error: errors.New(errors.CodeConfigValidation,
				fmt.Sprintf("pair references unknown source label '%s'", missing)),
		}
	}

	result := reconcile.Compare(docA, docB)
	if saveErr := e.store.SaveDiff(ctx, result); saveErr != nil {
		e.logger.Warnf(ctx, "Failed to persist comparison artifact for %s: %v", result.PairKey(), saveErr)
	}
	return result
}

// verdict collapses the run into the process exit contract: any pair that
// diverged, errored, or could not run makes the whole run fail.
func (e *ReconciliationEngine) verdict(results []domain.ComparisonResult) error {
	var diffs, notRun, errored int
	for _, r := range results {
		switch r.Status {
		case domain.StatusDiff:
			diffs++
		case domain.StatusNotRun:
			notRun++
		case domain.StatusError:
			errored++
		}
	}
	if diffs == 0 && notRun == 0 && errored == 0 {
		e.logger.Infof(context.Background(), "All comparisons identical")
		return nil
	}
	return errors.NewUserFacing(errors.CodeReconciliationFailed,
		fmt.Sprintf("reconciliation found %d diff(s), %d comparison(s) not run, %d error(s)", diffs, notRun, errored),
		"Inspect the report and the artifact directory for the differing documents.")
}
