//go:build !windows

package runner

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/qlapps/internal/logging"
	"github.com/lvim-tech/qlapps/pkg/execline"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return logging.New(logging.Config{Output: buf, Level: slog.LevelDebug})
}

func TestProcessExecutor_EmptyVectorIsNoop(t *testing.T) {
	var logs bytes.Buffer
	e := NewProcessExecutor(newTestLogger(&logs))

	require.NoError(t, e.Run(nil))
	require.NoError(t, e.Run([]string{}))
	assert.Contains(t, logs.String(), "command arguments could not be parsed")
}

func TestProcessExecutor_RunsAndWaits(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "launched")

	e := NewProcessExecutor(nil)
	require.NoError(t, e.Run([]string{"sh", "-c", "echo ok > " + marker}))

	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(data))
}

func TestProcessExecutor_StreamsOutput(t *testing.T) {
	var stdout bytes.Buffer
	e := &ProcessExecutor{Stdout: &stdout}

	require.NoError(t, e.Run([]string{"echo", "hello", "world"}))
	assert.Equal(t, "hello world\n", stdout.String())
}

func TestProcessExecutor_NonZeroExitIsLogged(t *testing.T) {
	var logs bytes.Buffer
	e := NewProcessExecutor(newTestLogger(&logs))

	require.NoError(t, e.Run([]string{"sh", "-c", "exit 3"}))
	assert.Contains(t, logs.String(), "status=3")
}

func TestProcessExecutor_SpawnFailure(t *testing.T) {
	e := NewProcessExecutor(nil)

	err := e.Run([]string{"/nonexistent/qlapps-test-binary", "--flag"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpawn))

	err = e.Run([]string{"qlapps-definitely-not-on-path"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpawn))
}

func TestProcessExecutor_Launch(t *testing.T) {
	var stdout bytes.Buffer
	e := &ProcessExecutor{Stdout: &stdout}

	require.NoError(t, e.Launch("echo 'quoted value' %f %U"))
	assert.Equal(t, "quoted value\n", stdout.String())

	require.NoError(t, e.Launch(""))

	err := e.Launch("echo 'broken")
	assert.True(t, errors.Is(err, execline.ErrMalformedCommand))
}
