// Package ghclient adapts the external hub client CLI as a fetch source.
// The tool implements the local-endpoint protocol itself (authentication
// handshake, resource paths, v1 schema conversion); this adapter only
// invokes it and captures stdout, behind the same Fetcher port as the
// direct HTTP sources.
package ghclient

import (
	"bytes"
	"context"
	stderrs "errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/olusolaa/hub-reconciler/internal/core/domain"
	"github.com/olusolaa/hub-reconciler/internal/core/ports"
	"github.com/olusolaa/hub-reconciler/internal/errors"
)

const (
	DefaultBinary = "ghclient"

	// Slowest observed path: the tool performs several hub round trips per
	// invocation.
	DefaultTimeout = 330 * time.Second

	maxVerbosity = 3
)

type Config struct {
	Label     string        `yaml:"label" mapstructure:"label"`
	Binary    string        `yaml:"binary" mapstructure:"binary"`
	Host      string        `yaml:"host" mapstructure:"host" validate:"required"`
	Username  string        `yaml:"username" mapstructure:"username"`
	Password  string        `yaml:"password" mapstructure:"password"`
	Verbosity int           `yaml:"verbosity" mapstructure:"verbosity"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type Fetcher struct {
	config Config
	clock  clockwork.Clock
	logger ports.Logger
}

func NewFetcher(cfg Config, clock clockwork.Clock, logger ports.Logger) (*Fetcher, error) {
	if cfg.Host == "" {
		return nil, errors.New(errors.CodeConfigValidation, "ghclient source requires a hub host or token")
	}
	if (cfg.Username == "") != (cfg.Password == "") {
		return nil, errors.New(errors.CodeConfigValidation, "ghclient source requires username and password together")
	}
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Verbosity < 0 || cfg.Verbosity > maxVerbosity {
		return nil, errors.New(errors.CodeConfigValidation,
			fmt.Sprintf("ghclient verbosity must be between 0 and %d", maxVerbosity))
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Fetcher{
		config: cfg,
		clock:  clock,
		logger: logger.WithFields(map[string]any{"source": cfg.Label, "kind": domain.SourceKindGHClient}),
	}, nil
}

func (f *Fetcher) Label() string {
	return f.config.Label
}

func (f *Fetcher) Kind() domain.SourceKind {
	return domain.SourceKindGHClient
}

func (f *Fetcher) args(resourceType domain.ResourceType) []string {
	args := []string{f.config.Host}
	if f.config.Username != "" {
		args = append(args, "--user="+f.config.Username, "--pass="+f.config.Password)
	}
	args = append(args, resourceType.String())
	if f.config.Verbosity > 0 {
		args = append(args, "-"+strings.Repeat("v", f.config.Verbosity))
	}
	return args
}

func (f *Fetcher) Fetch(ctx context.Context, resourceType domain.ResourceType) (domain.RawResponse, error) {
	if !resourceType.Valid() {
		return domain.RawResponse{}, errors.New(errors.CodeConfigValidation,
			fmt.Sprintf("unknown resource type: %s", resourceType))
	}

	runCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, f.config.Binary, f.args(resourceType)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	f.logger.Debugf(ctx, "exec %s %s", f.config.Binary, strings.Join(f.args(resourceType), " "))
	err := cmd.Run()
	if err != nil {
		return domain.RawResponse{}, f.classify(ctx, runCtx, err, stderr.String())
	}

	body := bytes.TrimSpace(stdout.Bytes())
	if len(body) == 0 {
		return domain.RawResponse{}, errors.New(errors.CodeFetchEmpty,
			fmt.Sprintf("source '%s' produced no output for %s", f.config.Label, resourceType))
	}

	return domain.RawResponse{
		SourceLabel:  f.config.Label,
		ResourceType: resourceType,
		Body:         body,
		CapturedAt:   f.clock.Now(),
	}, nil
}

func (f *Fetcher) classify(ctx, runCtx context.Context, err error, stderrOut string) error {
	if runCtx.Err() == context.DeadlineExceeded {
		return errors.Wrap(err, errors.CodeFetchTimeout,
			fmt.Sprintf("source '%s' exceeded its timeout ceiling", f.config.Label))
	}
	if ctx.Err() == context.Canceled {
		return errors.Wrap(err, errors.CodeFetchCancelled,
			fmt.Sprintf("fetch from source '%s' was cancelled", f.config.Label))
	}

	detail := strings.TrimSpace(stderrOut)
	var exitErr *exec.ExitError
	if stderrs.As(err, &exitErr) {
		return errors.Wrap(err, errors.CodeFetchTransport,
			fmt.Sprintf("source '%s' exited with status %d: %s", f.config.Label, exitErr.ExitCode(), detail))
	}
	return errors.Wrap(err, errors.CodeFetchTransport,
		fmt.Sprintf("failed to invoke client tool for source '%s'", f.config.Label))
}
