package main

import (
	"os"

	"github.com/blitz/hydrasect/cmd/hydrasect/command"
	"github.com/blitz/hydrasect/internal/app"
	"github.com/blitz/hydrasect/internal/models"
	"github.com/op/go-logging"
	"github.com/spf13/afero"
)

var (
	version = "local"

	log    = logging.MustGetLogger("hydrasect")
	format = logging.MustStringFormatter(`%{color}%{message}%{color:reset}`)
)

// loggingInit routes logs to stderr so search results on stdout stay
// machine readable.
func loggingInit(level logging.Level) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	backendFormatter := logging.NewBackendFormatter(backend, format)
	backendLeveled := logging.AddModuleLevel(backendFormatter)
	backendLeveled.SetLevel(level, "")
	logging.SetBackend(backendLeveled)
}

// loadSettings reads the optional configuration file. When no settings
// location can be derived the built-in defaults apply.
func loadSettings() (models.Settings, error) {
	path, err := app.DefaultSettingsPath()
	if err != nil {
		return models.Settings{}, nil
	}

	return app.LoadSettings(afero.NewOsFs(), path)
}

func runSearch(cfg app.Config) error {
	instance, err := app.New(cfg, app.Dependencies{Logger: log})
	if err != nil {
		return err
	}

	return instance.RunSearch()
}

func runScrape(cfg app.Config) error {
	instance, err := app.New(cfg, app.Dependencies{Logger: log})
	if err != nil {
		return err
	}

	return instance.RunScrape()
}

func main() {
	opts := command.Options{
		Version:      version,
		LoadSettings: loadSettings,
		RunSearch:    runSearch,
		RunScrape:    runScrape,
		InitLogging: func(debug bool) {
			if debug {
				loggingInit(logging.DEBUG)
			} else {
				loggingInit(logging.INFO)
			}
		},
	}

	if err := command.Execute(opts, nil); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
