// Package artifact persists per-run fetch and comparison outputs to a
// caller-visible directory tree: <root>/<resourceType>/<sourceLabel>.json
// for canonical documents, with .raw.json for the captured bytes and
// per-pair .diff/.result.json files.
package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olusolaa/hub-reconciler/internal/core/domain"
	"github.com/olusolaa/hub-reconciler/internal/core/ports"
	"github.com/olusolaa/hub-reconciler/internal/errors"
)

type Config struct {
	Dir string `yaml:"dir" mapstructure:"dir" validate:"required"`
}

type Store struct {
	root   string
	logger ports.Logger
}

func NewStore(cfg Config, logger ports.Logger) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New(errors.CodeConfigValidation, "artifact store requires a directory")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, errors.CodeArtifactWrite, "failed to create artifact root directory")
	}
	return &Store{
		root:   cfg.Dir,
		logger: logger.WithFields(map[string]any{"component": "artifact_store", "dir": cfg.Dir}),
	}, nil
}

func (s *Store) SaveRaw(ctx context.Context, raw domain.RawResponse) error {
	name := raw.SourceLabel + ".raw.json"
	return s.write(ctx, raw.ResourceType, name, raw.Body)
}

func (s *Store) SaveCanonical(ctx context.Context, doc domain.CanonicalDocument) error {
	name := doc.SourceLabel + ".json"
	return s.write(ctx, doc.ResourceType, name, []byte(doc.Text))
}

type resultArtifact struct {
	ResourceType domain.ResourceType     `json:"resource_type"`
	SourceA      string                  `json:"source_a"`
	SourceB      string                  `json:"source_b"`
	Status       domain.ComparisonStatus `json:"status"`
	Identical    bool                    `json:"identical"`
	Error        string                  `json:"error,omitempty"`
}

func (s *Store) SaveDiff(ctx context.Context, result domain.ComparisonResult) error {
	meta := resultArtifact{
		ResourceType: result.ResourceType,
		SourceA:      result.SourceA,
		SourceB:      result.SourceB,
		Status:       result.Status,
		Identical:    result.Identical,
	}
	if result.Error != nil {
		meta.Error = result.Error.Error()
	}
	encoded, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to encode comparison result")
	}
	if err := s.write(ctx, result.ResourceType, result.PairKey()+".result.json", append(encoded, '\n')); err != nil {
		return err
	}

	if result.Unified == "" {
		return nil
	}
	return s.write(ctx, result.ResourceType, result.PairKey()+".diff", []byte(result.Unified))
}

func (s *Store) write(ctx context.Context, resourceType domain.ResourceType, name string, data []byte) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	dir := filepath.Join(s.root, resourceType.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, errors.CodeArtifactWrite,
			fmt.Sprintf("failed to create artifact directory for %s", resourceType))
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, errors.CodeArtifactWrite,
			fmt.Sprintf("failed to write artifact %s", path))
	}
	s.logger.Debugf(ctx, "Wrote artifact %s (%d bytes)", path, len(data))
	return nil
}
