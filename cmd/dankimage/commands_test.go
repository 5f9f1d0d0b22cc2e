package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AvengeMedia/dankimage/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startScript(t *testing.T, body string) *runner.Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build_image.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0755))

	s, err := runner.New("scripts", runner.WithElevator("sh")).Start(path, nil, filepath.Dir(path))
	require.NoError(t, err)
	return s
}

func TestStreamSessionSuccess(t *testing.T) {
	assert.NoError(t, streamSession(startScript(t, "echo done\n")))
}

func TestStreamSessionPropagatesExitCode(t *testing.T) {
	err := streamSession(startScript(t, "echo oops >&2\nexit 4\n"))

	var exitErr *exitCodeError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 4, exitErr.code)
	assert.Equal(t, "Script finished with code 4.", exitErr.Error())
}

func TestStreamSessionCrash(t *testing.T) {
	err := streamSession(startScript(t, "kill -KILL $$\n"))

	var exitErr *exitCodeError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.code)
	assert.Equal(t, "Script crashed.", exitErr.Error())
}
