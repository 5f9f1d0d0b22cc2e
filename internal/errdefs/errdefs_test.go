package errdefs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorMatchesByType(t *testing.T) {
	cause := errors.New("exec: \"pkexec\": executable file not found in $PATH")
	err := fmt.Errorf("build: %w", WrapCustomError(ErrTypeSpawnFailed, "failed to start build_image.sh", cause))

	assert.True(t, errors.Is(err, ErrSpawnFailed))
	assert.False(t, errors.Is(err, ErrAlreadyRunning))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrTypeSpawnFailed, TypeOf(err))
	assert.Contains(t, err.Error(), "pkexec")
}

func TestWriteFailedError(t *testing.T) {
	cause := errors.New("read-only file system")
	err := &WriteFailedError{Artifact: ArtifactScript, Err: cause}

	assert.Equal(t, "failed to write script_config.txt: read-only file system", err.Error())
	assert.True(t, errors.Is(err, ErrWriteFailed))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrTypeWriteFailed, TypeOf(err))
}

func TestTypeOfPlainError(t *testing.T) {
	assert.Equal(t, ErrTypeGeneric, TypeOf(errors.New("boom")))
	assert.Equal(t, ErrTypeGeneric, TypeOf(nil))
}
