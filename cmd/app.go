package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/answerlens/internal/config"
	"github.com/abhisek/answerlens/internal/insight"
	"github.com/abhisek/answerlens/internal/llm"
	"github.com/abhisek/answerlens/internal/review"
	"github.com/abhisek/answerlens/internal/store"
)

// app bundles what a command needs: config, logger, store and service.
type app struct {
	cfg   config.Config
	log   *slog.Logger
	store *store.Store
	svc   *review.Service
}

type appOptions struct {
	// llm builds a model provider for the explainer. A missing provider
	// is reported on stderr and the command continues without it.
	llm       bool
	autoScore bool
}

// openApp loads configuration, opens the store and builds the review
// service.
func openApp(cmd *cobra.Command, opts appOptions) (*app, error) {
	ctx := cmd.Context()

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg.LogLevel)

	dsn, err := resolveDSN(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	st, err := store.OpenConfig(ctx, store.Config{Driver: cfg.Database.Driver, DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var explainer *insight.Explainer
	if opts.llm {
		provider, err := newProvider(ctx, cfg.LLM, st.EventRepo(), logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		} else {
			explainer = insight.NewExplainer(provider, insight.DefaultConfig())
		}
	}

	svc := review.NewService(review.ReposFromStore(st), review.Options{
		Analysis:  cfg.Analysis.Options(),
		AutoScore: cfg.Analysis.AutoScore || opts.autoScore,
		Explainer: explainer,
		Logger:    logger,
	})
	return &app{cfg: cfg, log: logger, store: st, svc: svc}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// resolveDSN returns the database location using --db (highest
// priority), then the configured DSN, then the default data path.
func resolveDSN(cmd *cobra.Command, cfg config.Config) (string, error) {
	sqlite := cfg.Database.Driver == "" || cfg.Database.Driver == store.DriverSQLite

	dsn, _ := cmd.Flags().GetString("db")
	if dsn == "" {
		dsn = cfg.Database.DSN
	}
	switch {
	case dsn != "" && sqlite:
		return dsn, store.EnsureDir(dsn)
	case dsn != "":
		return dsn, nil
	case sqlite:
		return store.DefaultDBPath()
	default:
		return "", fmt.Errorf("database.dsn is required for the %s driver", cfg.Database.Driver)
	}
}

// newProvider builds the configured provider, falling back to whichever
// vendor key is present in the environment.
func newProvider(ctx context.Context, cfg llm.Config, events store.EventRepo, logger *slog.Logger) (llm.Provider, error) {
	if !cfg.HasKey() {
		if discovered, ok := llm.DiscoverConfig(); ok {
			discovered.Retry = cfg.Retry
			discovered.Timeout = cfg.Timeout
			cfg = discovered
		}
	}
	return llm.NewProvider(ctx, cfg, events, logger)
}

func withApp(opts appOptions, fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, opts)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, args, a)
	}
}
