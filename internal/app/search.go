package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/blitz/hydrasect/internal/bisect"
	"github.com/blitz/hydrasect/internal/history"
	"github.com/blitz/hydrasect/internal/models"
	"github.com/spf13/afero"
)

// RunSearch finds the commits closest to HEAD that have a Hydra evaluation
// and prints them one per line, ready to be checked out and tested.
func (a *App) RunSearch() error {
	a.logger.Debugf("===> Running hydrasect version [%s]", cyan(a.cfg.Version))

	f, err := history.Open(a.fs, a.cfg.HistoryFile)
	if err != nil {
		if errors.Is(err, history.ErrNoHistory) {
			a.logger.Errorf("No evaluation history found at [%s]. Please run [%s] first.",
				a.cfg.HistoryFile, cyan("hydrasect scrape"))
		}
		return err
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			a.logger.Errorf("Failed to close history file: %s", closeErr)
		}
	}()

	targets, err := history.Read(f)
	if err != nil {
		return err
	}

	repo, err := NewGitRepo(a.cmdRunner, a.logger)
	if err != nil {
		return err
	}

	a.warnIfStale(repo, f)

	head, err := repo.Head()
	if err != nil {
		return err
	}

	graph, err := repo.BisectGraph()
	if err != nil {
		return err
	}

	notSkipped := func(oid models.Oid) (bool, error) {
		skipped, err := repo.IsSkipped(oid)
		return !skipped, err
	}

	commits, err := bisect.ClosestCommits(head, graph, targets, notSkipped)
	if err != nil {
		return err
	}

	if len(commits) == 0 {
		a.logger.Warning("No evaluated commits found in the current bisect range")
		return nil
	}

	for _, commit := range commits {
		if _, err := fmt.Fprintln(a.out, commit); err != nil {
			return err
		}
	}

	return nil
}

// warnIfStale suggests a scrape when the history file looks too old to
// cover the bisected range. Staleness is only a heuristic, so every failure
// along the way degrades to a debug log.
func (a *App) warnIfStale(repo *GitRepo, f afero.File) {
	info, err := f.Stat()
	if err != nil {
		a.logger.Debugf("Failed to stat history file: %s", err)
		return
	}

	age := time.Since(info.ModTime())
	if age < history.StaleAfter {
		return
	}

	newest, err := history.LastEntry(f)
	if err != nil {
		a.logger.Debugf("Failed to read newest history entry: %s", err)
		return
	}

	covered, err := repo.IsAncestor("refs/bisect/bad", newest)
	if err != nil {
		a.logger.Debugf("Failed to check history coverage: %s", err)
		return
	}

	if !covered {
		a.logger.Warningf("History file was last updated [%s] ago and does not cover the bad commit. Consider running [%s].",
			age.Round(time.Minute), cyan("hydrasect scrape"))
	}
}
