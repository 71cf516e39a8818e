package command

import (
	"errors"
	"time"

	"github.com/blitz/hydrasect/internal/app"
	"github.com/blitz/hydrasect/internal/helpers"
	"github.com/blitz/hydrasect/internal/history"
	"github.com/blitz/hydrasect/internal/models"
	"github.com/spf13/cobra"
)

// Options describes the collaborators and defaults required to build the CLI.
type Options struct {
	Version      string
	LoadSettings func() (models.Settings, error)
	RunSearch    func(app.Config) error
	RunScrape    func(app.Config) error
	InitLogging  func(debug bool)
}

// Execute builds and runs the Cobra command tree using the supplied options.
func Execute(opts Options, args []string) error {
	var settings models.Settings
	if opts.LoadSettings != nil {
		loaded, err := opts.LoadSettings()
		if err != nil {
			return err
		}
		settings = loaded
	}

	root := newRootCommand(opts, settings)

	if args != nil {
		root.SetArgs(args)
	}

	return root.Execute()
}

// newRootCommand builds the root Cobra command with global flags and hooks.
func newRootCommand(opts Options, settings models.Settings) *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:          "hydrasect",
		Short:        "Find nixpkgs commits evaluated by Hydra while bisecting",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.InitLogging != nil {
				opts.InitLogging(debug)
			}
			return nil
		},
	}

	root.Version = opts.Version
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug mode")

	root.AddCommand(newSearchCommand(opts, settings, func() bool { return debug }))
	root.AddCommand(newScrapeCommand(opts, settings, func() bool { return debug }))

	return root
}

// newSearchCommand constructs the search subcommand that prints the evaluated
// commits closest to HEAD.
func newSearchCommand(opts Options, settings models.Settings, debug func() bool) *cobra.Command {
	flags := loadSearchDefaults(settings)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Print evaluated commits closest to HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			historyFile, err := resolveHistoryFile(flags.historyFile)
			if err != nil {
				return err
			}

			cfg, err := app.NewConfig(historyFile, app.WithDebug(debug()), app.WithVersion(opts.Version))
			if err != nil {
				return err
			}

			if opts.RunSearch == nil {
				return errors.New("no search handler provided")
			}

			return opts.RunSearch(cfg)
		},
	}

	cmd.Flags().StringVar(&flags.historyFile, "history-file", flags.historyFile, "Path to the evaluation history file")

	return cmd
}

// newScrapeCommand constructs the scrape subcommand that refreshes the
// evaluation history from Hydra.
func newScrapeCommand(opts Options, settings models.Settings, debug func() bool) *cobra.Command {
	flags := loadScrapeDefaults(settings)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Download the evaluation history of a jobset from Hydra",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			historyFile, err := resolveHistoryFile(flags.historyFile)
			if err != nil {
				return err
			}

			cfg, err := app.NewConfig(historyFile, flags.configOptions(opts, debug())...)
			if err != nil {
				return err
			}

			if opts.RunScrape == nil {
				return errors.New("no scrape handler provided")
			}

			return opts.RunScrape(cfg)
		},
	}

	cmd.Flags().StringVar(&flags.historyFile, "history-file", flags.historyFile, "Path to the evaluation history file")
	cmd.Flags().StringVar(&flags.url, "url", flags.url, "Hydra instance URL (e.g., https://hydra.nixos.org)")
	cmd.Flags().StringVar(&flags.project, "project", flags.project, "Hydra project holding the jobset")
	cmd.Flags().StringVar(&flags.jobset, "jobset", flags.jobset, "Hydra jobset to scrape")
	cmd.Flags().StringVar(&flags.input, "input", flags.input, "Jobset input holding the git revision")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Timeout for Hydra API requests (default 30s)")
	cmd.Flags().BoolVar(&flags.showDiff, "diff", false, "Print a diff of the history file changes")

	return cmd
}

type searchFlags struct {
	historyFile string
}

func loadSearchDefaults(settings models.Settings) searchFlags {
	defaults := searchFlags{}

	historyFile := helpers.GetEnv("HYDRASECT_HISTORY_FILE", "")
	if historyFile == "" {
		historyFile = settings.HistoryFile
	}
	defaults.historyFile = historyFile

	return defaults
}

type scrapeFlags struct {
	historyFile string
	url         string
	project     string
	jobset      string
	input       string
	timeout     time.Duration
	showDiff    bool
}

func loadScrapeDefaults(settings models.Settings) scrapeFlags {
	defaults := scrapeFlags{}

	historyFile := helpers.GetEnv("HYDRASECT_HISTORY_FILE", "")
	if historyFile == "" {
		historyFile = settings.HistoryFile
	}
	defaults.historyFile = historyFile

	url := helpers.GetEnv("HYDRASECT_HYDRA_URL", "")
	if url == "" {
		url = settings.HydraURL
	}
	defaults.url = url

	project := helpers.GetEnv("HYDRASECT_PROJECT", "")
	if project == "" {
		project = settings.Project
	}
	defaults.project = project

	jobset := helpers.GetEnv("HYDRASECT_JOBSET", "")
	if jobset == "" {
		jobset = settings.Jobset
	}
	defaults.jobset = jobset

	input := helpers.GetEnv("HYDRASECT_INPUT", "")
	if input == "" {
		input = settings.Input
	}
	defaults.input = input

	return defaults
}

func (s scrapeFlags) configOptions(opts Options, debugEnabled bool) []app.ConfigOption {
	return []app.ConfigOption{
		app.WithHydraURL(s.url),
		app.WithProject(s.project),
		app.WithJobset(s.jobset),
		app.WithInput(s.input),
		app.WithHTTPTimeout(s.timeout),
		app.WithShowDiff(s.showDiff),
		app.WithDebug(debugEnabled),
		app.WithVersion(opts.Version),
	}
}

// resolveHistoryFile falls back to the XDG cache location when no path was
// given on the command line, in the environment, or in the settings file.
func resolveHistoryFile(path string) (string, error) {
	if path != "" {
		return path, nil
	}

	return history.DefaultPath()
}
