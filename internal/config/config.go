// Package config loads answerlens settings from an optional YAML file and
// ANSWERLENS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/answerlens/internal/analysis"
	"github.com/abhisek/answerlens/internal/llm"
)

// DefaultPath is read when no config file is named explicitly.
const DefaultPath = "answerlens.yaml"

// Config is the full application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	LogLevel string         `yaml:"log_level"`

	// Schedule is the cron spec for periodic re-analysis, e.g. "@every 1h".
	Schedule string `yaml:"schedule"`

	Slack    SlackConfig    `yaml:"slack"`
	Analysis AnalysisConfig `yaml:"analysis"`
	LLM      llm.Config     `yaml:"llm"`

	// Path is the file the config was read from, empty when none was.
	Path string `yaml:"-"`
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite or postgres
	DSN    string `yaml:"dsn"`    // file path or connection URL
}

// SlackConfig holds credentials for publishing class summaries.
type SlackConfig struct {
	Token   string `yaml:"token"`
	Channel string `yaml:"channel"`
}

// AnalysisConfig mirrors the tunable analyzer options.
type AnalysisConfig struct {
	ClusterThreshold float64  `yaml:"cluster_threshold"`
	MaxClusterGroups int      `yaml:"max_cluster_groups"`
	TopKeywords      int      `yaml:"top_keywords"`
	MaxMistakes      int      `yaml:"max_mistakes"`
	WrongScoreCutoff float64  `yaml:"wrong_score_cutoff"`
	DefaultScore     float64  `yaml:"default_score"`
	Parallel         bool     `yaml:"parallel"`
	AutoScore        bool     `yaml:"auto_score"`
	StopWords        []string `yaml:"stop_words"`
}

// Options converts the block into analyzer options.
func (a AnalysisConfig) Options() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.ClusterThreshold = a.ClusterThreshold
	opts.MaxClusterGroups = a.MaxClusterGroups
	opts.TopKeywords = a.TopKeywords
	opts.MaxMistakes = a.MaxMistakes
	opts.WrongScoreCutoff = analysis.Score(a.WrongScoreCutoff)
	opts.DefaultScore = analysis.Score(a.DefaultScore)
	opts.Parallel = a.Parallel
	opts.StopWords = a.StopWords
	return opts
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	opts := analysis.DefaultOptions()
	return Config{
		Database: DatabaseConfig{Driver: "sqlite"},
		LogLevel: "warn",
		Schedule: "@every 1h",
		Analysis: AnalysisConfig{
			ClusterThreshold: opts.ClusterThreshold,
			MaxClusterGroups: opts.MaxClusterGroups,
			TopKeywords:      opts.TopKeywords,
			MaxMistakes:      opts.MaxMistakes,
			WrongScoreCutoff: *opts.WrongScoreCutoff,
			DefaultScore:     *opts.DefaultScore,
		},
		LLM: llm.DefaultConfig(),
	}
}

// Load reads the config file at path, then applies environment
// overrides. An empty path falls back to ANSWERLENS_CONFIG and then to
// DefaultPath; only an explicitly named file is required to exist.
func Load(path string) (Config, error) {
	cfg := Default()

	required := true
	if path == "" {
		path = os.Getenv("ANSWERLENS_CONFIG")
	}
	if path == "" {
		path, required = DefaultPath, false
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.Path = path
	case errors.Is(err, fs.ErrNotExist) && !required:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides c with any ANSWERLENS_* variables that are set.
func (c *Config) ApplyEnv() error {
	envOverride(&c.Database.DSN, "ANSWERLENS_DB")
	envOverride(&c.Database.Driver, "ANSWERLENS_DB_DRIVER")
	envOverride(&c.LogLevel, "ANSWERLENS_LOG_LEVEL")
	envOverride(&c.Schedule, "ANSWERLENS_SCHEDULE")
	envOverride(&c.Slack.Token, "ANSWERLENS_SLACK_TOKEN")
	envOverride(&c.Slack.Channel, "ANSWERLENS_SLACK_CHANNEL")
	if err := envOverrideBool(&c.Analysis.AutoScore, "ANSWERLENS_AUTO_SCORE"); err != nil {
		return err
	}
	c.LLM.ApplyEnv()
	return nil
}

func envOverride(field *string, key string) {
	if v := os.Getenv(key); v != "" {
		*field = v
	}
}

func envOverrideBool(field *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*field = b
	return nil
}

// ParseLevel maps debug, info, warn or error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// NewLogger returns a text logger on stderr at the given level. An
// unknown level falls back to info.
func NewLogger(level string) *slog.Logger {
	return newLogger(os.Stderr, level)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	l, _ := ParseLevel(level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
