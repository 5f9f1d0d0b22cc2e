package errdefs

import "fmt"

type ErrorType int

const (
	ErrTypeNotLinux ErrorType = iota
	ErrTypeAlreadyRunning
	ErrTypeSpawnFailed
	ErrTypeScriptNotExecutable
	ErrTypeSourceUnavailable
	ErrTypeWriteFailed
	ErrTypeNoScriptsFolder
	ErrTypeInvalidDevice
	ErrTypeCancelled
	ErrTypeGeneric
)

type CustomError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is matches any CustomError of the same Type, so errors.Is works against the
// sentinels below regardless of message.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

func NewCustomError(errType ErrorType, message string) error {
	return &CustomError{
		Type:    errType,
		Message: message,
	}
}

func WrapCustomError(errType ErrorType, message string, err error) error {
	return &CustomError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// TypeOf returns the ErrorType carried by err, or ErrTypeGeneric.
func TypeOf(err error) ErrorType {
	for err != nil {
		switch e := err.(type) {
		case *CustomError:
			return e.Type
		case *WriteFailedError:
			return ErrTypeWriteFailed
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ErrTypeGeneric
}

// Artifact names one of the two persisted text files.
type Artifact string

const (
	ArtifactConfig Artifact = "config.txt"
	ArtifactScript Artifact = "script_config.txt"
)

// WriteFailedError reports which artifact could not be persisted.
type WriteFailedError struct {
	Artifact Artifact
	Err      error
}

func (e *WriteFailedError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Artifact, e.Err)
}

func (e *WriteFailedError) Unwrap() error {
	return e.Err
}

func (e *WriteFailedError) Is(target error) bool {
	t, ok := target.(*CustomError)
	return ok && t.Type == ErrTypeWriteFailed
}

var (
	ErrAlreadyRunning      = NewCustomError(ErrTypeAlreadyRunning, "a script is already running")
	ErrSpawnFailed         = NewCustomError(ErrTypeSpawnFailed, "failed to start script")
	ErrScriptNotExecutable = NewCustomError(ErrTypeScriptNotExecutable, "script not found or not executable")
	ErrSourceUnavailable   = NewCustomError(ErrTypeSourceUnavailable, "config file not found")
	ErrWriteFailed         = NewCustomError(ErrTypeWriteFailed, "failed to write configuration")
	ErrNoScriptsFolder     = NewCustomError(ErrTypeNoScriptsFolder, "please select a scripts folder first")
	ErrInvalidDevice       = NewCustomError(ErrTypeInvalidDevice, "please select a valid device")
	ErrCancelled           = NewCustomError(ErrTypeCancelled, "cancelled by user")
)
