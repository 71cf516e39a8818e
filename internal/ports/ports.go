package ports

import (
	"github.com/blitz/hydrasect/internal/models"
)

// CmdRunner executes shell commands and returns captured output.
type CmdRunner interface {
	Run(cmd string, args ...string) (stdout string, stderr string, err error)
}

// Globber expands filesystem patterns into matching paths.
type Globber interface {
	Glob(pattern string) ([]string, error)
}

// EvalFetcher retrieves pages of jobset evaluations from a Hydra server.
type EvalFetcher interface {
	FetchEvals(pageSuffix string) (models.EvalsPage, error)
}
