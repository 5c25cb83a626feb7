package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/college-advisor/internal/catalog"
	"github.com/jonathan/college-advisor/internal/config"
	"github.com/jonathan/college-advisor/internal/llm"
	"github.com/jonathan/college-advisor/internal/logger"
	"github.com/jonathan/college-advisor/internal/router"
	"github.com/jonathan/college-advisor/internal/schemas"
)

const defaultCatalogPath = "data/colleges.json"

// Flags shared by the conversation commands.
var (
	flagConfig  string
	flagCatalog string
	flagAPIKey  string
	flagVerbose bool
)

// addCommonFlags registers the flags shared by chat, ask and serve.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to JSON config file")
	cmd.Flags().StringVar(&flagCatalog, "catalog", "", "Path to the college catalog JSON (overrides CATALOG_PATH)")
	cmd.Flags().StringVar(&flagAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed debug information")
}

// resolveConfig merges the optional config file with environment variables
// and flags. Flags win over the environment, the environment wins over the
// file.
func resolveConfig() (config.Config, error) {
	cfg := config.Config{}
	if flagConfig != "" {
		loaded, err := config.LoadConfig(flagConfig)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	env := config.Config{
		Catalog: os.Getenv("CATALOG_PATH"),
		APIKey:  os.Getenv("GEMINI_API_KEY"),
	}
	cfg = env.MergeWithDefaults(cfg)

	overrides := config.Config{Catalog: flagCatalog, APIKey: flagAPIKey}
	cfg = overrides.MergeWithDefaults(cfg)

	if cfg.Catalog == "" {
		cfg.Catalog = defaultCatalogPath
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	return cfg, nil
}

// bootstrap performs the fatal-on-failure start-up sequence: catalog load
// and schema check, generative client construction, router assembly.
func bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*router.Router, llm.Client, error) {
	// Validate the catalog document against its schema when the schema file
	// can be located; a missing schema is only a warning.
	if schemaPath := schemas.ResolveSchemaPath("schemas/college_catalog.schema.json"); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, cfg.Catalog); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				return nil, nil, fmt.Errorf("catalog does not validate against schema: %w", err)
			}
			log.Warn("could not validate catalog against schema", zap.Error(err))
		}
	}

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Info("catalog loaded", zap.Int("colleges", cat.Len()), zap.Strings("exams", cat.Exams()))

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create generative client: %w", err)
	}

	rt := router.New(cat, client, log)
	if cfg.MatchThreshold > 0 {
		rt = rt.WithMatchThreshold(cfg.MatchThreshold)
	}
	if cfg.HistoryLimit > 0 {
		rt = rt.WithHistoryLimit(cfg.HistoryLimit)
	}

	return rt, client, nil
}

// newLogger builds the process logger from config.
func newLogger(cfg config.Config) *zap.Logger {
	level := cfg.LogLevel
	if level == "" {
		if cfg.Verbose {
			level = "debug"
		} else {
			level = "info"
		}
	}
	return logger.New(level, cfg.LogFormat)
}
