package app

import (
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/blitz/hydrasect/cmd/hydrasect/utils"
	"github.com/blitz/hydrasect/internal/hydra"
	"github.com/blitz/hydrasect/internal/ports"
	"github.com/op/go-logging"
	"github.com/spf13/afero"
)

// Dependencies aggregates runtime collaborators required by App.
type Dependencies struct {
	FS        afero.Fs
	CmdRunner ports.CmdRunner
	Globber   ports.Globber
	Fetcher   ports.EvalFetcher
	Logger    *logging.Logger
	Out       io.Writer
}

// App orchestrates the search and scrape workflows.
type App struct {
	cfg       Config
	fs        afero.Fs
	cmdRunner ports.CmdRunner
	globber   ports.Globber
	fetcher   ports.EvalFetcher
	logger    *logging.Logger
	out       io.Writer
}

// New constructs an App using the supplied configuration and dependencies.
func New(cfg Config, deps Dependencies) (*App, error) {
	if cfg.HistoryFile == "" {
		return nil, errors.New("history file path must be provided")
	}

	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.CmdRunner == nil {
		deps.CmdRunner = &utils.RealCmdRunner{}
	}
	if deps.Globber == nil {
		deps.Globber = utils.CustomGlobber{}
	}
	if deps.Fetcher == nil {
		var httpClient *http.Client
		if cfg.HTTPTimeout > 0 {
			httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
		}
		fetcher, err := hydra.NewClient(hydra.Config{
			BaseURL:    cfg.HydraURL,
			Project:    cfg.Project,
			Jobset:     cfg.Jobset,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, err
		}
		deps.Fetcher = fetcher
	}
	if deps.Logger == nil {
		return nil, errors.New("logger must be provided")
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}

	return &App{
		cfg:       cfg,
		fs:        deps.FS,
		cmdRunner: deps.CmdRunner,
		globber:   deps.Globber,
		fetcher:   deps.Fetcher,
		logger:    deps.Logger,
		out:       deps.Out,
	}, nil
}
