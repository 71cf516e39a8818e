package app

import (
	"errors"
	"time"
)

const (
	defaultHydraURL    = "https://hydra.nixos.org"
	defaultProject     = "nixos"
	defaultJobset      = "unstable-small"
	defaultInput       = "nixpkgs"
	defaultHTTPTimeout = 30 * time.Second
)

// Config captures runtime parameters for a hydrasect run.
type Config struct {
	HydraURL    string
	Project     string
	Jobset      string
	Input       string
	HistoryFile string
	HTTPTimeout time.Duration
	ShowDiff    bool
	Debug       bool
	Version     string
}

// ConfigOption mutates a Config during construction.
type ConfigOption func(*Config)

// NewConfig creates a Config with defaults and applies provided options.
func NewConfig(historyFile string, opts ...ConfigOption) (Config, error) {
	if historyFile == "" {
		return Config{}, errors.New("history file path must be provided")
	}

	cfg := Config{
		HistoryFile: historyFile,
		HydraURL:    defaultHydraURL,
		Project:     defaultProject,
		Jobset:      defaultJobset,
		Input:       defaultInput,
		HTTPTimeout: defaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg, nil
}

// WithHydraURL overrides the Hydra server the scraper talks to.
func WithHydraURL(url string) ConfigOption {
	return func(cfg *Config) {
		if url != "" {
			cfg.HydraURL = url
		}
	}
}

// WithProject overrides the Hydra project to scrape.
func WithProject(project string) ConfigOption {
	return func(cfg *Config) {
		if project != "" {
			cfg.Project = project
		}
	}
}

// WithJobset overrides the Hydra jobset to scrape.
func WithJobset(jobset string) ConfigOption {
	return func(cfg *Config) {
		if jobset != "" {
			cfg.Jobset = jobset
		}
	}
}

// WithInput overrides the jobset input whose revision is recorded.
func WithInput(input string) ConfigOption {
	return func(cfg *Config) {
		if input != "" {
			cfg.Input = input
		}
	}
}

// WithHTTPTimeout overrides the timeout applied to Hydra API requests.
func WithHTTPTimeout(timeout time.Duration) ConfigOption {
	return func(cfg *Config) {
		if timeout > 0 {
			cfg.HTTPTimeout = timeout
		}
	}
}

// WithShowDiff toggles printing the history changes after a scrape.
func WithShowDiff(enabled bool) ConfigOption {
	return func(cfg *Config) {
		cfg.ShowDiff = enabled
	}
}

// WithDebug toggles verbose logging.
func WithDebug(enabled bool) ConfigOption {
	return func(cfg *Config) {
		cfg.Debug = enabled
	}
}

// WithVersion sets the application version used in log output.
func WithVersion(version string) ConfigOption {
	return func(cfg *Config) {
		cfg.Version = version
	}
}
