package app

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/blitz/hydrasect/cmd/hydrasect/mocks"
	"github.com/blitz/hydrasect/internal/models"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubEvalFetcher struct {
	mu    sync.Mutex
	pages map[string]models.EvalsPage
	calls []string
}

func (s *stubEvalFetcher) FetchEvals(pageSuffix string) (models.EvalsPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, pageSuffix)

	page, found := s.pages[pageSuffix]
	if !found {
		return models.EvalsPage{}, fmt.Errorf("unexpected page suffix %q", pageSuffix)
	}
	return page, nil
}

func (s *stubEvalFetcher) fetchedPages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.calls...)
}

func evalWith(id int64, revision string) models.Eval {
	return models.Eval{
		ID:     id,
		Inputs: map[string]models.EvalInput{"nixpkgs": {Type: "git", Revision: revision}},
	}
}

func TestAppRunScrapeIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skip integration test in short mode")
	}

	tempDir := t.TempDir()
	historyFile := filepath.Join(tempDir, "cache", "hydrasect", "hydra-eval-history")

	// Leftovers from a previous interrupted run.
	require.NoError(t, os.MkdirAll(filepath.Dir(historyFile), 0o755))
	staleTemp := historyFile + ".tmp"
	require.NoError(t, os.WriteFile(staleTemp, []byte("partial"), 0o644))
	require.NoError(t, os.WriteFile(historyFile, []byte("00aa 1\n"), 0o644))

	fetcher := &stubEvalFetcher{pages: map[string]models.EvalsPage{
		"": {
			First: "?page=1",
			Last:  "?page=2",
			Next:  "?page=2",
			Evals: []models.Eval{evalWith(30, "CCDD"), evalWith(20, "bbcc")},
		},
		"?page=2": {
			First: "?page=1",
			Last:  "?page=2",
			Evals: []models.Eval{
				{ID: 99},
				evalWith(98, "not-a-hash"),
				evalWith(10, "aabb"),
			},
		},
	}}

	logBuffer := captureLogs(t)
	logger := logging.MustGetLogger("scrape-test")

	cfg, err := NewConfig(historyFile, WithVersion("test"))
	require.NoError(t, err)

	var out bytes.Buffer
	appInstance, err := New(cfg, Dependencies{
		Fetcher: fetcher,
		Logger:  logger,
		Out:     &out,
	})
	require.NoError(t, err)

	require.NoError(t, appInstance.RunScrape())

	// Oldest evaluation first, canonical lowercase oids, entries without a
	// usable revision dropped.
	content, err := os.ReadFile(historyFile)
	require.NoError(t, err)
	assert.Equal(t, "aabb 10\nbbcc 20\nccdd 30\n", string(content))

	assert.Equal(t, []string{"", "?page=2"}, fetcher.fetchedPages())

	_, statErr := os.Stat(staleTemp)
	assert.True(t, os.IsNotExist(statErr))

	assert.Contains(t, logBuffer.String(), "invalid")
	assert.Empty(t, out.String())
}

func TestAppRunScrapePrintsDiff(t *testing.T) {
	tempDir := t.TempDir()
	historyFile := filepath.Join(tempDir, "hydra-eval-history")
	require.NoError(t, os.WriteFile(historyFile, []byte("aabb 10\n"), 0o644))

	fetcher := &stubEvalFetcher{pages: map[string]models.EvalsPage{
		"": {Evals: []models.Eval{evalWith(20, "bbcc"), evalWith(10, "aabb")}},
	}}

	logger := setupTestLogger(t, "scrape-diff")

	cfg, err := NewConfig(historyFile, WithShowDiff(true))
	require.NoError(t, err)

	var out bytes.Buffer
	appInstance, err := New(cfg, Dependencies{Fetcher: fetcher, Logger: logger, Out: &out})
	require.NoError(t, err)

	require.NoError(t, appInstance.RunScrape())

	assert.Contains(t, out.String(), "+bbcc 20")
	assert.NotContains(t, out.String(), "-aabb 10")
}

func TestAppRunScrapeUnchanged(t *testing.T) {
	tempDir := t.TempDir()
	historyFile := filepath.Join(tempDir, "hydra-eval-history")
	require.NoError(t, os.WriteFile(historyFile, []byte("aabb 10\n"), 0o644))

	fetcher := &stubEvalFetcher{pages: map[string]models.EvalsPage{
		"": {Evals: []models.Eval{evalWith(10, "aabb")}},
	}}

	logBuffer := captureLogs(t)
	logger := logging.MustGetLogger("scrape-unchanged-test")

	cfg, err := NewConfig(historyFile, WithShowDiff(true))
	require.NoError(t, err)

	var out bytes.Buffer
	appInstance, err := New(cfg, Dependencies{Fetcher: fetcher, Logger: logger, Out: &out})
	require.NoError(t, err)

	require.NoError(t, appInstance.RunScrape())

	content, err := os.ReadFile(historyFile)
	require.NoError(t, err)
	assert.Equal(t, "aabb 10\n", string(content))

	assert.Contains(t, logBuffer.String(), "already up to date")
	assert.Empty(t, out.String())
}

func TestAppRunScrapeFetchError(t *testing.T) {
	tempDir := t.TempDir()
	historyFile := filepath.Join(tempDir, "hydra-eval-history")
	require.NoError(t, os.WriteFile(historyFile, []byte("aabb 10\n"), 0o644))

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFetcher := mocks.NewMockEvalFetcher(ctrl)
	mockFetcher.EXPECT().
		FetchEvals("").
		Return(models.EvalsPage{}, errors.New("hydra: unexpected status 502"))

	logger := setupTestLogger(t, "scrape-fetch-err")

	cfg, err := NewConfig(historyFile)
	require.NoError(t, err)

	appInstance, err := New(cfg, Dependencies{Fetcher: mockFetcher, Logger: logger})
	require.NoError(t, err)

	require.Error(t, appInstance.RunScrape())

	// A failed scrape leaves the previous history untouched.
	content, err := os.ReadFile(historyFile)
	require.NoError(t, err)
	assert.Equal(t, "aabb 10\n", string(content))
}

func TestAppRunScrapeSurvivesGlobFailure(t *testing.T) {
	tempDir := t.TempDir()
	historyFile := filepath.Join(tempDir, "hydra-eval-history")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGlobber := mocks.NewMockGlobber(ctrl)
	mockGlobber.EXPECT().
		Glob(historyFile + "*").
		Return(nil, errors.New("glob failed"))

	fetcher := &stubEvalFetcher{pages: map[string]models.EvalsPage{
		"": {Evals: []models.Eval{evalWith(10, "aabb")}},
	}}

	logger := setupTestLogger(t, "scrape-glob-err")

	cfg, err := NewConfig(historyFile)
	require.NoError(t, err)

	appInstance, err := New(cfg, Dependencies{Fetcher: fetcher, Globber: mockGlobber, Logger: logger})
	require.NoError(t, err)

	require.NoError(t, appInstance.RunScrape())

	content, err := os.ReadFile(historyFile)
	require.NoError(t, err)
	assert.Equal(t, "aabb 10\n", string(content))
}
