package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blitz/hydrasect/internal/bisect"
	"github.com/blitz/hydrasect/internal/models"
	"github.com/blitz/hydrasect/internal/ports"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/op/go-logging"
)

// GitRepo wraps the repository enclosing the current working directory,
// together with the git binary for the operations go-git has no
// equivalent for.
type GitRepo struct {
	repo      *git.Repository
	cmdRunner ports.CmdRunner
	log       *logging.Logger
}

func NewGitRepo(cmdRunner ports.CmdRunner, log *logging.Logger) (*GitRepo, error) {
	repoRoot, err := GetGitRepoRoot()
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpen(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %v", err)
	}

	return &GitRepo{
		repo:      repo,
		cmdRunner: cmdRunner,
		log:       log,
	}, nil
}

// Head returns the commit the work tree is currently on.
func (g *GitRepo) Head() (models.Oid, error) {
	ref, err := g.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %v", err)
	}

	return models.ParseOid(ref.Hash().String())
}

// BisectGraph parses the commits the running bisection still considers.
// The --bisect log selector has no go-git equivalent, so this shells out.
func (g *GitRepo) BisectGraph() (bisect.Graph, error) {
	stdout, stderr, err := g.cmdRunner.Run("git", "log", "--format=%H %P", "--bisect")
	if err != nil {
		g.log.Error(strings.TrimSpace(stderr))
		return bisect.Graph{}, fmt.Errorf("failed to run git log --bisect: %v", err)
	}

	return bisect.ParseGraph(strings.NewReader(stdout))
}

// IsSkipped reports whether oid was marked with git bisect skip.
func (g *GitRepo) IsSkipped(oid models.Oid) (bool, error) {
	_, err := g.repo.Reference(plumbing.ReferenceName("refs/bisect/skip-"+oid.String()), false)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up skip ref for %s: %v", oid, err)
	}

	return true, nil
}

// IsAncestor reports whether the commit ref points at is an ancestor of oid.
func (g *GitRepo) IsAncestor(ref string, oid models.Oid) (bool, error) {
	ancestorRef, err := g.repo.Reference(plumbing.ReferenceName(ref), true)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %v", ref, err)
	}

	ancestor, err := g.repo.CommitObject(ancestorRef.Hash())
	if err != nil {
		return false, fmt.Errorf("failed to get commit object for %s: %v", ref, err)
	}

	descendant, err := g.repo.CommitObject(plumbing.NewHash(oid.String()))
	if err != nil {
		return false, fmt.Errorf("failed to get commit object for %s: %v", oid, err)
	}

	return ancestor.IsAncestor(descendant)
}

func GetGitRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}

	for {
		_, err := git.PlainOpen(dir)
		if err == nil {
			return dir, nil
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break
		}

		dir = parentDir
	}

	return "", fmt.Errorf("no git repository found")
}
