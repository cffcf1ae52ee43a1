// Package cloudv1 fetches resources from the hub vendor's v1 cloud API
// using bearer-token authentication.
package cloudv1

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/olusolaa/hub-reconciler/internal/adapters/source/httperr"
	"github.com/olusolaa/hub-reconciler/internal/adapters/source/limiter"
	"github.com/olusolaa/hub-reconciler/internal/core/domain"
	"github.com/olusolaa/hub-reconciler/internal/core/ports"
	"github.com/olusolaa/hub-reconciler/internal/errors"
)

const (
	DefaultBaseURL = "https://my.geniushub.co.uk/v1/"

	// The cloud endpoint is the slowest and least reliable of the three
	// access paths; observed runs need up to five minutes.
	DefaultTimeout = 300 * time.Second
)

type Config struct {
	Label   string        `yaml:"label" mapstructure:"label"`
	Token   string        `yaml:"token" mapstructure:"token" validate:"required"`
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type Fetcher struct {
	config Config
	client *http.Client
	clock  clockwork.Clock
	logger ports.Logger
}

func NewFetcher(cfg Config, clock clockwork.Clock, logger ports.Logger) (*Fetcher, error) {
	if cfg.Token == "" {
		return nil, errors.New(errors.CodeConfigValidation, "cloud v1 source requires a bearer token")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Fetcher{
		config: cfg,
		client: &http.Client{},
		clock:  clock,
		logger: logger.WithFields(map[string]any{"source": cfg.Label, "kind": domain.SourceKindCloudV1}),
	}, nil
}

func (f *Fetcher) Label() string {
	return f.config.Label
}

func (f *Fetcher) Kind() domain.SourceKind {
	return domain.SourceKindCloudV1
}

func (f *Fetcher) Fetch(ctx context.Context, resourceType domain.ResourceType) (domain.RawResponse, error) {
	if !resourceType.Valid() {
		return domain.RawResponse{}, errors.New(errors.CodeConfigValidation,
			fmt.Sprintf("unknown resource type: %s", resourceType))
	}

	if err := limiter.Wait(ctx, f.logger); err != nil {
		return domain.RawResponse{}, httperr.Classify(ctx, f.config.Label, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	url := f.config.BaseURL + resourceType.String()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RawResponse{}, errors.Wrap(err, errors.CodeInternal, "failed to build cloud v1 request")
	}
	req.Header.Set("authorization", "Bearer "+f.config.Token)

	f.logger.Debugf(ctx, "GET %s", url)
	resp, err := f.client.Do(req)
	if err != nil {
		return domain.RawResponse{}, httperr.Classify(ctx, f.config.Label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.RawResponse{}, httperr.ClassifyStatus(f.config.Label, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.RawResponse{}, httperr.Classify(ctx, f.config.Label, err)
	}
	if len(body) == 0 {
		return domain.RawResponse{}, errors.New(errors.CodeFetchEmpty,
			fmt.Sprintf("source '%s' returned an empty body for %s", f.config.Label, resourceType))
	}

	return domain.RawResponse{
		SourceLabel:  f.config.Label,
		ResourceType: resourceType,
		Body:         body,
		CapturedAt:   f.clock.Now(),
	}, nil
}
