package app

import (
	"bytes"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/blitz/hydrasect/internal/history"
	"github.com/op/go-logging"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const historyFilePath = "/cache/hydrasect/hydra-eval-history"

// captureLogs redirects the logging backend into a buffer for the duration
// of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var logBuffer bytes.Buffer
	testBackend := logging.NewLogBackend(&logBuffer, "", 0)
	logging.SetBackend(logging.NewBackendFormatter(testBackend, logging.MustStringFormatter(`%{message}`)))
	t.Cleanup(func() {
		logging.SetBackend(logging.NewBackendFormatter(logging.NewLogBackend(os.Stdout, "", 0), logging.MustStringFormatter(`%{message}`)))
	})

	return &logBuffer
}

func TestAppRunSearchIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skip integration test in short mode")
	}

	fixture := buildBisectFixture(t)
	c1, c2 := fixture.commits[0], fixture.commits[1]

	fs := afero.NewMemMapFs()
	historyContent := fmt.Sprintf("%s 100\n%s 101\n", c1, c2)
	require.NoError(t, afero.WriteFile(fs, historyFilePath, []byte(historyContent), 0o644))

	logBuffer := captureLogs(t)
	logger := logging.MustGetLogger("search-test")

	cfg, err := NewConfig(historyFilePath, WithVersion("test"))
	require.NoError(t, err)

	var out bytes.Buffer
	appInstance, err := New(cfg, Dependencies{
		FS:        fs,
		CmdRunner: &stubCmdRunner{stdout: fixture.bisectLog()},
		Logger:    logger,
		Out:       &out,
	})
	require.NoError(t, err)

	require.NoError(t, appInstance.RunSearch())

	// c2 carries a bisect skip ref, so the nearest usable evaluation is c1.
	require.Equal(t, c1.String()+"\n", out.String())
	require.NotContains(t, logBuffer.String(), "Consider running")
}

func TestAppRunSearchWarnsWhenHistoryStale(t *testing.T) {
	if testing.Short() {
		t.Skip("skip integration test in short mode")
	}

	fixture := buildBisectFixture(t)
	c1, c2 := fixture.commits[0], fixture.commits[1]

	fs := afero.NewMemMapFs()
	historyContent := fmt.Sprintf("%s 100\n%s 101\n", c1, c2)
	require.NoError(t, afero.WriteFile(fs, historyFilePath, []byte(historyContent), 0o644))

	// The newest recorded evaluation (c2) predates the bad commit, and the
	// file itself is old.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, fs.Chtimes(historyFilePath, past, past))

	logBuffer := captureLogs(t)
	logger := logging.MustGetLogger("search-stale-test")

	cfg, err := NewConfig(historyFilePath)
	require.NoError(t, err)

	var out bytes.Buffer
	appInstance, err := New(cfg, Dependencies{
		FS:        fs,
		CmdRunner: &stubCmdRunner{stdout: fixture.bisectLog()},
		Logger:    logger,
		Out:       &out,
	})
	require.NoError(t, err)

	require.NoError(t, appInstance.RunSearch())

	require.Equal(t, c1.String()+"\n", out.String())
	require.Contains(t, logBuffer.String(), "Consider running")
}

func TestAppRunSearchNoUsableCommits(t *testing.T) {
	if testing.Short() {
		t.Skip("skip integration test in short mode")
	}

	fixture := buildBisectFixture(t)
	c3 := fixture.commits[2]

	// Only the bad commit was ever evaluated.
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, historyFilePath, []byte(c3.String()+" 100\n"), 0o644))

	logBuffer := captureLogs(t)
	logger := logging.MustGetLogger("search-empty-test")

	cfg, err := NewConfig(historyFilePath)
	require.NoError(t, err)

	var out bytes.Buffer
	appInstance, err := New(cfg, Dependencies{
		FS:        fs,
		CmdRunner: &stubCmdRunner{stdout: fixture.bisectLog()},
		Logger:    logger,
		Out:       &out,
	})
	require.NoError(t, err)

	require.NoError(t, appInstance.RunSearch())

	require.Empty(t, out.String())
	require.Contains(t, logBuffer.String(), "No evaluated commits")
}

func TestAppRunSearchMissingHistory(t *testing.T) {
	logBuffer := captureLogs(t)
	logger := logging.MustGetLogger("search-missing-test")

	cfg, err := NewConfig(historyFilePath)
	require.NoError(t, err)

	appInstance, err := New(cfg, Dependencies{
		FS:        afero.NewMemMapFs(),
		CmdRunner: &stubCmdRunner{},
		Logger:    logger,
	})
	require.NoError(t, err)

	err = appInstance.RunSearch()
	require.ErrorIs(t, err, history.ErrNoHistory)
	require.Contains(t, logBuffer.String(), "hydrasect scrape")
}
