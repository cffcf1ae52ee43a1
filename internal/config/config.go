package config

import (
	"github.com/olusolaa/hub-reconciler/internal/adapters/artifact"
	"github.com/olusolaa/hub-reconciler/internal/adapters/source/cloudv1"
	"github.com/olusolaa/hub-reconciler/internal/adapters/source/ghclient"
	"github.com/olusolaa/hub-reconciler/internal/adapters/source/localv3"
	"github.com/olusolaa/hub-reconciler/internal/adapters/source/retry"
	"github.com/olusolaa/hub-reconciler/internal/core/domain"
	"github.com/olusolaa/hub-reconciler/internal/log"
	"github.com/olusolaa/hub-reconciler/internal/reporting/text"
)

type Config struct {
	Settings  SettingsConfig   `yaml:"settings" mapstructure:"settings"`
	Artifacts artifact.Config  `yaml:"artifacts" mapstructure:"artifacts"`
	Sources   []SourceConfig   `yaml:"sources" mapstructure:"sources" validate:"min=1,dive"`
	Resources []ResourceConfig `yaml:"resources" mapstructure:"resources" validate:"min=1,dive"`
}

type SettingsConfig struct {
	LogLevel     log.Level       `yaml:"log_level" mapstructure:"log_level"`
	LogFormat    log.Format      `yaml:"log_format" mapstructure:"log_format"`
	Concurrency  int             `yaml:"concurrency" mapstructure:"concurrency"`
	ReporterType string          `yaml:"reporter" mapstructure:"reporter"`
	RateLimitRPS int             `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	Retry        retry.Config    `yaml:"retry" mapstructure:"retry"`
	Reporter     ReporterConfigs `yaml:"reporter_config" mapstructure:"reporter_config"`
}

type ReporterConfigs struct {
	Text *text.Config `yaml:"text,omitempty" mapstructure:"text"`
}

// SourceConfig declares one origin a response can be fetched from. Exactly
// one of the kind-specific sections must be set, matching Kind.
type SourceConfig struct {
	Label    string            `yaml:"label" mapstructure:"label" validate:"required"`
	Kind     domain.SourceKind `yaml:"kind" mapstructure:"kind" validate:"required,oneof=cloud_v1 local_v3 ghclient"`
	CloudV1  *cloudv1.Config   `yaml:"cloud_v1,omitempty" mapstructure:"cloud_v1"`
	LocalV3  *localv3.Config   `yaml:"local_v3,omitempty" mapstructure:"local_v3"`
	GHClient *ghclient.Config  `yaml:"ghclient,omitempty" mapstructure:"ghclient"`
}

// PairConfig names the two source labels whose canonical documents get
// compared. Which pairs matter is per-resource-type configuration; there
// is no inferred rule.
type PairConfig struct {
	A string `yaml:"a" mapstructure:"a" validate:"required"`
	B string `yaml:"b" mapstructure:"b" validate:"required"`
}

type ResourceConfig struct {
	Type  domain.ResourceType `yaml:"type" mapstructure:"type" validate:"required,oneof=zones devices issues"`
	Pairs []PairConfig        `yaml:"pairs" mapstructure:"pairs" validate:"min=1,dive"`
}

func (c *Config) GetResourceTypes() []domain.ResourceType {
	types := make([]domain.ResourceType, 0, len(c.Resources))
	seen := make(map[domain.ResourceType]struct{})
	for _, rc := range c.Resources {
		if _, ok := seen[rc.Type]; ok {
			continue
		}
		seen[rc.Type] = struct{}{}
		types = append(types, rc.Type)
	}
	return types
}

func (c *Config) GetPairsForType(resourceType domain.ResourceType) []PairConfig {
	for _, rc := range c.Resources {
		if rc.Type == resourceType {
			return rc.Pairs
		}
	}
	return nil
}

// SourceLabelsForType returns, in configuration order, every source label
// referenced by the type's pairs. Fetches run in this order.
func (c *Config) SourceLabelsForType(resourceType domain.ResourceType) []string {
	referenced := make(map[string]struct{})
	for _, pair := range c.GetPairsForType(resourceType) {
		referenced[pair.A] = struct{}{}
		referenced[pair.B] = struct{}{}
	}
	labels := make([]string, 0, len(referenced))
	for _, sc := range c.Sources {
		if _, ok := referenced[sc.Label]; ok {
			labels = append(labels, sc.Label)
		}
	}
	return labels
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:     log.LevelInfo,
			LogFormat:    log.FormatText,
			Concurrency:  3,
			ReporterType: text.ReporterTypeText,
			Retry:        retry.DefaultConfig(),
			Reporter: ReporterConfigs{
				Text: &text.Config{NoColor: false},
			},
		},
		Artifacts: artifact.Config{Dir: "artifacts"},
		Sources:   []SourceConfig{},
		Resources: []ResourceConfig{},
	}
}
