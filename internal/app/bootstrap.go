package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/viper"

	"github.com/olusolaa/hub-reconciler/internal/adapters/artifact"
	"github.com/olusolaa/hub-reconciler/internal/adapters/source/cloudv1"
	"github.com/olusolaa/hub-reconciler/internal/adapters/source/ghclient"
	"github.com/olusolaa/hub-reconciler/internal/adapters/source/limiter"
	"github.com/olusolaa/hub-reconciler/internal/adapters/source/localv3"
	"github.com/olusolaa/hub-reconciler/internal/adapters/source/retry"
	"github.com/olusolaa/hub-reconciler/internal/config"
	"github.com/olusolaa/hub-reconciler/internal/core/domain"
	"github.com/olusolaa/hub-reconciler/internal/core/ports"
	"github.com/olusolaa/hub-reconciler/internal/core/service"
	"github.com/olusolaa/hub-reconciler/internal/errors"
	"github.com/olusolaa/hub-reconciler/internal/log"
	jsonreport "github.com/olusolaa/hub-reconciler/internal/reporting/json"
	"github.com/olusolaa/hub-reconciler/internal/reporting/text"
)

// BuildApplicationFromViper wires the whole harness: config, logger,
// fetchers per configured source, artifact store, reporter and engine.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg := config.DefaultConfig()
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, decodeHook); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logCfg := log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Infof(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(ctx, cfg); err != nil {
		var errorDetails strings.Builder
		errorDetails.WriteString("Configuration validation failed:")
		validationErrors := err.(validator.ValidationErrors)
		for _, fe := range validationErrors {
			errorDetails.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		wrappedErr := errors.NewUserFacing(errors.CodeConfigValidation, errorDetails.String(), "Please check your configuration file or flags.")
		logger.Errorf(ctx, wrappedErr, "Configuration validation failed")
		return nil, wrappedErr
	}
	if err := validatePairWiring(cfg); err != nil {
		logger.Errorf(ctx, err, "Configuration validation failed")
		return nil, err
	}
	logger.Debugf(ctx, "Configuration validated successfully")

	limiter.Initialize(cfg.Settings.RateLimitRPS, logger)

	clock := clockwork.NewRealClock()
	registry := service.NewComponentRegistry()
	for _, sc := range cfg.Sources {
		fetcher, mapper, err := buildSource(sc, clock, logger)
		if err != nil {
			return nil, err
		}
		fetcher = retry.Wrap(fetcher, cfg.Settings.Retry, logger)
		if err := registry.RegisterFetcher(fetcher); err != nil {
			return nil, err
		}
		if mapper != nil {
			if err := registry.RegisterMapper(sc.Label, mapper); err != nil {
				return nil, err
			}
		}
		logger.Infof(ctx, "Registered source '%s' (%s)", sc.Label, sc.Kind)
	}

	storeLog := logger.WithFields(map[string]any{"component": "artifacts"})
	store, err := artifact.NewStore(cfg.Artifacts, storeLog)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to initialize artifact store")
	}
	storeLog.Infof(ctx, "Using artifact directory: %s", cfg.Artifacts.Dir)

	var reporter ports.Reporter
	switch cfg.Settings.ReporterType {
	case text.ReporterTypeText:
		reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": text.ReporterTypeText})
		if cfg.Settings.Reporter.Text == nil {
			cfg.Settings.Reporter.Text = config.DefaultConfig().Settings.Reporter.Text
		}
		reporter, err = text.NewReporter(*cfg.Settings.Reporter.Text, reportLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize text reporter")
		}
	case jsonreport.ReporterTypeJSON:
		reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": jsonreport.ReporterTypeJSON})
		reporter, err = jsonreport.NewReporter(jsonreport.Config{}, reportLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
		}
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", cfg.Settings.ReporterType), "Supported: text, json")
	}

	logger.Debugf(ctx, "Initializing reconciliation engine")
	engine, err := service.NewReconciliationEngine(
		registry, reporter, store,
		logger.WithFields(map[string]any{"component": "engine"}),
		cfg, cfg.Settings.Concurrency,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize reconciliation engine")
	}

	logger.Infof(ctx, "Application bootstrap complete")
	return NewApplication(engine, logger), nil
}

// buildSource constructs the concrete fetcher for one source declaration
// plus its schema mapper where the source does not speak v1 natively.
func buildSource(sc config.SourceConfig, clock clockwork.Clock, logger ports.Logger) (ports.Fetcher, ports.Mapper, error) {
	switch sc.Kind {
	case domain.SourceKindCloudV1:
		if sc.CloudV1 == nil {
			return nil, nil, missingSection(sc.Label, "cloud_v1")
		}
		fcfg := *sc.CloudV1
		fcfg.Label = sc.Label
		fetcher, err := cloudv1.NewFetcher(fcfg, clock, logger)
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.CodeConfigValidation,
				fmt.Sprintf("failed to initialize cloud v1 source '%s'", sc.Label))
		}
		return fetcher, nil, nil
	case domain.SourceKindLocalV3:
		if sc.LocalV3 == nil {
			return nil, nil, missingSection(sc.Label, "local_v3")
		}
		fcfg := *sc.LocalV3
		fcfg.Label = sc.Label
		fetcher, err := localv3.NewFetcher(fcfg, clock, logger)
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.CodeConfigValidation,
				fmt.Sprintf("failed to initialize local v3 source '%s'", sc.Label))
		}
		return fetcher, localv3.Mapper{}, nil
	case domain.SourceKindGHClient:
		if sc.GHClient == nil {
			return nil, nil, missingSection(sc.Label, "ghclient")
		}
		fcfg := *sc.GHClient
		fcfg.Label = sc.Label
		fetcher, err := ghclient.NewFetcher(fcfg, clock, logger)
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.CodeConfigValidation,
				fmt.Sprintf("failed to initialize ghclient source '%s'", sc.Label))
		}
		return fetcher, nil, nil
	default:
		return nil, nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unknown source kind '%s' for source '%s'", sc.Kind, sc.Label),
			"Supported kinds: cloud_v1, local_v3, ghclient")
	}
}

func missingSection(label, section string) error {
	return errors.NewUserFacing(errors.CodeConfigValidation,
		fmt.Sprintf("source '%s' declares kind %s but has no %s section", label, section, section),
		fmt.Sprintf("Add a %s block to the source definition.", section))
}

// validatePairWiring checks every comparison pair references a declared
// source and never compares a source against itself.
func validatePairWiring(cfg *config.Config) error {
	declared := make(map[string]struct{}, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		declared[sc.Label] = struct{}{}
	}
	for _, rc := range cfg.Resources {
		for _, pair := range rc.Pairs {
			if pair.A == pair.B {
				return errors.NewUserFacing(errors.CodeConfigValidation,
					fmt.Sprintf("resource %s compares source '%s' against itself", rc.Type, pair.A),
					"Each pair must name two different sources.")
			}
			for _, label := range []string{pair.A, pair.B} {
				if _, ok := declared[label]; !ok {
					return errors.NewUserFacing(errors.CodeConfigValidation,
						fmt.Sprintf("resource %s references undefined source '%s'", rc.Type, label),
						"Declare the source under the sources section.")
				}
			}
		}
	}
	return nil
}
