package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	rq := require.New(t)
	path := filepath.Join(t.TempDir(), "run.log")

	logger, err := New(Config{Level: "debug", Format: "json", Output: path})
	rq.NoError(err)

	logger.Debug("row computed", zap.Uint("exponent", 64))
	rq.NoError(logger.Sync())

	data, err := os.ReadFile(path)
	rq.NoError(err)
	rq.Contains(string(data), `"msg":"row computed"`)
	rq.Contains(string(data), `"exponent":64`)
}

func TestNewRespectsLevel(t *testing.T) {
	rq := require.New(t)
	path := filepath.Join(t.TempDir(), "run.log")

	logger, err := New(Config{Level: "warn", Format: "json", Output: path})
	rq.NoError(err)

	logger.Info("hidden")
	logger.Warn("shown")
	rq.NoError(logger.Sync())

	data, err := os.ReadFile(path)
	rq.NoError(err)
	rq.NotContains(string(data), "hidden")
	rq.Contains(string(data), "shown")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	logger, err := New(Config{Level: "loud", Format: "json", Output: "discard"})
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zap.InfoLevel))
	require.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestGlobalHelpersWriteThroughInitializedLogger(t *testing.T) {
	rq := require.New(t)
	path := filepath.Join(t.TempDir(), "global.log")
	t.Cleanup(InitializeDefault)

	rq.NoError(Initialize(Config{Level: "warn", Format: "json", Output: path}))
	Info("suppressed")
	Warn("exact threshold clamped", zap.Uint("requested", 5000))
	Error("failed to load config", zap.String("file", "keyspace.yaml"))
	Sync()

	data, err := os.ReadFile(path)
	rq.NoError(err)
	out := string(data)
	rq.NotContains(out, "suppressed")
	rq.Contains(out, `"level":"warn"`)
	rq.Contains(out, `"requested":5000`)
	rq.Contains(out, `"level":"error"`)
	rq.Contains(out, `"file":"keyspace.yaml"`)
}
