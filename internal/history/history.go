// Package history manages the local cache of Hydra evaluation history.
//
// The history file holds one evaluation per line, "<commit-hash> <eval-id>",
// ordered from oldest to newest so the most recent evaluation sits on the
// final line.
package history

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/blitz/hydrasect/internal/helpers"
	"github.com/blitz/hydrasect/internal/models"
	"github.com/spf13/afero"
)

// StaleAfter is how old the history file may grow before a search warns
// that it might be missing recent evaluations.
const StaleAfter = 15 * time.Minute

// ErrNoHistory indicates that no history file exists yet.
var ErrNoHistory = errors.New("history file not available")

// DefaultPath returns the history file location following the XDG base
// directory convention.
func DefaultPath() (string, error) {
	if cache := helpers.GetEnv("XDG_CACHE_HOME", ""); cache != "" {
		return filepath.Join(cache, "hydrasect", "hydra-eval-history"), nil
	}

	if home := helpers.GetEnv("HOME", ""); home != "" {
		return filepath.Join(home, ".cache", "hydrasect", "hydra-eval-history"), nil
	}

	return "", errors.New("XDG_CACHE_HOME and HOME are both unset or empty")
}

// Open opens the history file at path. A missing file is reported as
// ErrNoHistory so callers can point the user at the scrape command.
func Open(fs afero.Fs, path string) (afero.File, error) {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoHistory
		}
		return nil, fmt.Errorf("opening history file: %w", err)
	}

	return f, nil
}

// Read parses history lines into the set of evaluated commits. Everything
// after the leading hex digest of each line is ignored; blank lines and
// lines without a digest are skipped.
func Read(r io.Reader) (map[models.Oid]struct{}, error) {
	oids := make(map[models.Oid]struct{})

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		prefix := hexPrefix(scanner.Text())
		if prefix == "" {
			continue
		}

		oid, err := models.ParseOid(prefix)
		if err != nil {
			return nil, fmt.Errorf("history line %d: %w", line, err)
		}
		oids[oid] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	return oids, nil
}

// LastLine returns the final line of r, ignoring a trailing newline. It
// scans backwards in chunks so large history files are not read whole.
func LastLine(r io.ReadSeeker) ([]byte, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	// A newline terminating the file does not start a new line.
	if size > 0 {
		b := make([]byte, 1)
		if _, err := r.Seek(size-1, io.SeekStart); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, err
		}
		if b[0] == '\n' {
			size--
		}
	}

	buf := make([]byte, 4096)
	start := int64(0)
	for end := size; end > 0; {
		off := end - int64(len(buf))
		if off < 0 {
			off = 0
		}

		chunk := buf[:end-off]
		if _, err := r.Seek(off, io.SeekStart); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(r, chunk); err != nil {
			return nil, err
		}

		if i := bytes.LastIndexByte(chunk, '\n'); i >= 0 {
			start = off + int64(i) + 1
			break
		}
		end = off
	}

	line := make([]byte, size-start)
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, line); err != nil {
		return nil, err
	}

	return line, nil
}

// LastEntry returns the commit recorded on the final history line, which is
// the most recently scraped evaluation.
func LastEntry(r io.ReadSeeker) (models.Oid, error) {
	line, err := LastLine(r)
	if err != nil {
		return "", fmt.Errorf("reading last history line: %w", err)
	}

	return models.ParseOid(hexPrefix(string(line)))
}

// hexPrefix returns the leading run of hex digits in s.
func hexPrefix(s string) string {
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return s[:i]
		}
	}

	return s
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
