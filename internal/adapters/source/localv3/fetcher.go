// Package localv3 fetches resources directly from a hub on the local
// network via its v3 HTTP API, and maps the v3 schema onto the v1 shape
// shared by the other sources.
package localv3

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
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

// The local API is served by the hub itself and answers quickly when it
// answers at all.
const DefaultTimeout = 120 * time.Second

const defaultPort = 1223

type Config struct {
	Label    string        `yaml:"label" mapstructure:"label"`
	Host     string        `yaml:"host" mapstructure:"host" validate:"required"`
	Username string        `yaml:"username" mapstructure:"username" validate:"required"`
	Password string        `yaml:"password" mapstructure:"password" validate:"required"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type Fetcher struct {
	config     Config
	authDigest string
	client     *http.Client
	clock      clockwork.Clock
	logger     ports.Logger
}

func NewFetcher(cfg Config, clock clockwork.Clock, logger ports.Logger) (*Fetcher, error) {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New(errors.CodeConfigValidation, "local v3 source requires host, username and password")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	// The hub authenticates basic auth against sha256(username+password),
	// not the raw password.
	sum := sha256.Sum256([]byte(cfg.Username + cfg.Password))

	return &Fetcher{
		config:     cfg,
		authDigest: hex.EncodeToString(sum[:]),
		client:     &http.Client{},
		clock:      clock,
		logger:     logger.WithFields(map[string]any{"source": cfg.Label, "kind": domain.SourceKindLocalV3}),
	}, nil
}

func (f *Fetcher) Label() string {
	return f.config.Label
}

func (f *Fetcher) Kind() domain.SourceKind {
	return domain.SourceKindLocalV3
}

// resourcePath maps a logical resource onto the v3 endpoint that carries
// it. Devices live under data_manager; issues are embedded in the zones
// payload and extracted by the mapper.
func resourcePath(resourceType domain.ResourceType) (string, error) {
	switch resourceType {
	case domain.ResourceZones, domain.ResourceIssues:
		return "zones", nil
	case domain.ResourceDevices:
		return "data_manager", nil
	default:
		return "", errors.New(errors.CodeConfigValidation,
			fmt.Sprintf("unknown resource type: %s", resourceType))
	}
}

func (f *Fetcher) Fetch(ctx context.Context, resourceType domain.ResourceType) (domain.RawResponse, error) {
	path, err := resourcePath(resourceType)
	if err != nil {
		return domain.RawResponse{}, err
	}

	if err := limiter.Wait(ctx, f.logger); err != nil {
		return domain.RawResponse{}, httperr.Classify(ctx, f.config.Label, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	host := f.config.Host
	if !strings.Contains(host, ":") {
		host = fmt.Sprintf("%s:%d", host, defaultPort)
	}
	url := fmt.Sprintf("http://%s/v3/%s", host, path)
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RawResponse{}, errors.Wrap(err, errors.CodeInternal, "failed to build local v3 request")
	}
	req.SetBasicAuth(f.config.Username, f.authDigest)
	// The hub's embedded server mishandles keep-alive; a second request on
	// the same connection gets dropped.
	req.Header.Set("Connection", "close")
	req.Close = true

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
