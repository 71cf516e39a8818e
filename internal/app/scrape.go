package app

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/blitz/hydrasect/internal/hydra"
	"github.com/blitz/hydrasect/internal/models"
	"github.com/blitz/hydrasect/internal/tmpfd"
	"github.com/codingsince1985/checksum"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/natefinch/atomic"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
)

// RunScrape downloads the evaluation history of the configured jobset from
// Hydra and atomically replaces the local history file.
func (a *App) RunScrape() error {
	a.logger.Infof("===> Scraping all [%s/%s] evaluations from [%s]",
		a.cfg.Project, a.cfg.Jobset, cyan(a.cfg.HydraURL))

	historyDir := filepath.Dir(a.cfg.HistoryFile)
	if err := a.fs.MkdirAll(historyDir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory [%s]: %v", historyDir, err)
	}

	a.sweepStaleTempFiles()

	var oldContent []byte
	if a.cfg.ShowDiff {
		oldContent = readFileContent(a.fs, a.cfg.HistoryFile)
	}

	oldSum := a.historyChecksum()

	spool, err := tmpfd.New()
	if err != nil {
		return fmt.Errorf("failed to create spool file: %v", err)
	}

	defer func() {
		if closeErr := spool.Close(); closeErr != nil {
			a.logger.Errorf("Failed to close spool file: %s", closeErr)
		}
	}()

	count, err := a.fetchAllEvals(spool)
	if err != nil {
		return err
	}

	a.logger.Info("===> Replacing old history file with new data")

	content, err := oldestFirst(spool)
	if err != nil {
		return err
	}

	if err := atomic.WriteFile(a.cfg.HistoryFile, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write history file [%s]: %v", a.cfg.HistoryFile, err)
	}

	newSum := a.historyChecksum()

	switch {
	case oldSum == "":
		a.logger.Infof("Wrote [%s] with [%d] evaluations", cyan(a.cfg.HistoryFile), count)
	case oldSum == newSum:
		a.logger.Infof("History file is already up to date with [%d] evaluations", count)
	default:
		a.logger.Infof("Updated [%s] with [%d] evaluations", cyan(a.cfg.HistoryFile), count)
	}

	if a.cfg.ShowDiff && oldSum != newSum {
		if err := a.printHistoryDiff(oldContent, content); err != nil {
			return err
		}
	}

	return nil
}

// fetchAllEvals follows Hydra's pagination links and spools one
// "<revision> <eval-id>" line per evaluation, in fetch order. It returns
// the number of evaluations written.
func (a *App) fetchAllEvals(spool io.Writer) (int, error) {
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetDescription("Scraping evaluations"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	var count int
	lengthKnown := false

	pageSuffix := ""
	for {
		page := hydra.PageNumber(pageSuffix)
		if page == 0 {
			page = 1
		}
		_ = bar.Set(page)

		evalsPage, err := a.fetcher.FetchEvals(pageSuffix)
		if err != nil {
			return 0, err
		}

		if !lengthKnown {
			if last := hydra.PageNumber(evalsPage.Last); last > 0 {
				bar.ChangeMax64(int64(last))
				lengthKnown = true
			}
		}

		for _, eval := range evalsPage.Evals {
			input, found := eval.Inputs[a.cfg.Input]
			if !found {
				a.logger.Debugf("Evaluation [%d] has no [%s] input, skipping", eval.ID, a.cfg.Input)
				continue
			}

			oid, err := models.ParseOid(input.Revision)
			if err != nil {
				a.logger.Warningf("Evaluation [%d] has an invalid [%s] revision [%s], skipping",
					eval.ID, a.cfg.Input, input.Revision)
				continue
			}

			if _, err := fmt.Fprintf(spool, "%s %d\n", oid, eval.ID); err != nil {
				return 0, fmt.Errorf("failed to write to spool file: %v", err)
			}
			count++
		}

		if evalsPage.Next == "" {
			break
		}
		pageSuffix = evalsPage.Next
	}

	_ = bar.Finish()

	return count, nil
}

// oldestFirst rewinds the spool and returns its lines in reverse order.
// Hydra pages newest first, while the history file keeps the newest
// evaluation on its final line.
func oldestFirst(spool io.ReadSeeker) ([]byte, error) {
	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind spool file: %v", err)
	}

	var lines [][]byte
	scanner := bufio.NewScanner(spool)
	for scanner.Scan() {
		line := make([]byte, len(scanner.Bytes()))
		copy(line, scanner.Bytes())
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read spool file: %v", err)
	}

	var content bytes.Buffer
	for i := len(lines) - 1; i >= 0; i-- {
		content.Write(lines[i])
		content.WriteByte('\n')
	}

	return content.Bytes(), nil
}

// sweepStaleTempFiles removes leftovers from interrupted scrapes next to
// the history file, including ".tmp" files from older releases.
func (a *App) sweepStaleTempFiles() {
	matches, err := a.globber.Glob(a.cfg.HistoryFile + "*")
	if err != nil {
		a.logger.Debugf("Failed to glob for stale temporary files: %s", err)
		return
	}

	for _, match := range matches {
		if match == a.cfg.HistoryFile {
			continue
		}

		if err := a.fs.Remove(match); err != nil {
			a.logger.Errorf("Failed to remove stale temporary file [%s]: %s", red(match), err)
			continue
		}
		a.logger.Warningf("Removed stale temporary file [%s]", yellow(match))
	}
}

// historyChecksum returns the SHA-256 of the current history file, or an
// empty string when it does not exist yet.
func (a *App) historyChecksum() string {
	sum, err := checksum.SHA256sum(a.cfg.HistoryFile)
	if err != nil {
		return ""
	}
	return sum
}

// printHistoryDiff prints a unified diff between the previous and the new
// history file content.
func (a *App) printHistoryDiff(oldContent, newContent []byte) error {
	edits := myers.ComputeEdits(span.URIFromPath(a.cfg.HistoryFile), string(oldContent), string(newContent))
	diff := gotextdiff.ToUnified(a.cfg.HistoryFile, a.cfg.HistoryFile+".new", string(oldContent), edits)

	_, err := fmt.Fprint(a.out, diff)
	return err
}

// readFileContent loads file contents while tolerating missing files.
func readFileContent(fs afero.Fs, path string) []byte {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil
	}
	return data
}
