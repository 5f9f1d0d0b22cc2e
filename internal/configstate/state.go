package configstate

import (
	"errors"
	"io/fs"

	"github.com/AvengeMedia/dankimage/internal/errdefs"
	"github.com/AvengeMedia/dankimage/internal/log"
)

var errMultiline = errors.New("network name and secret must be single-line values")

// Source provides the two persisted artifacts. ReadScript reports a missing
// script body with an error matching fs.ErrNotExist.
type Source interface {
	ReadConfig() ([]byte, error)
	ReadScript() ([]byte, error)
}

// Sink persists the two artifacts.
type Sink interface {
	WriteConfig(data []byte) error
	WriteScript(data []byte) error
}

// Values is one complete set of the editable fields.
type Values struct {
	SSID       string
	Secret     string
	ScriptBody string
}

// State holds the editable fields and the snapshot last persisted or loaded.
// It is owned by a single editing context and is not safe for concurrent use.
type State struct {
	current Values
	saved   Values
}

func New() *State {
	return &State{}
}

func (s *State) SSID() string       { return s.current.SSID }
func (s *State) Secret() string     { return s.current.Secret }
func (s *State) ScriptBody() string { return s.current.ScriptBody }

func (s *State) SetSSID(v string)       { s.current.SSID = v }
func (s *State) SetSecret(v string)     { s.current.Secret = v }
func (s *State) SetScriptBody(v string) { s.current.ScriptBody = v }

func (s *State) Current() Values  { return s.current }
func (s *State) Snapshot() Values { return s.saved }

// IsDirty reports whether any field differs from its snapshot.
func (s *State) IsDirty() bool {
	return s.current != s.saved
}

// Load replaces fields and snapshot with the persisted values. When the
// key/value artifact cannot be read nothing changes and an
// ErrTypeSourceUnavailable error is returned. A key absent from the artifact,
// or a missing script body, leaves that field and its snapshot as they were.
func (s *State) Load(src Source) error {
	data, err := src.ReadConfig()
	if err != nil {
		return errdefs.WrapCustomError(errdefs.ErrTypeSourceUnavailable, "config file not found", err)
	}

	creds, found := ParseKeyValues(data)
	if found.SSID {
		s.current.SSID, s.saved.SSID = creds.SSID, creds.SSID
	}
	if found.Secret {
		s.current.Secret, s.saved.Secret = creds.Secret, creds.Secret
	}

	body, err := src.ReadScript()
	switch {
	case err == nil:
		s.current.ScriptBody, s.saved.ScriptBody = string(body), string(body)
	case errors.Is(err, fs.ErrNotExist):
		log.Debug("no script config present, keeping current script body")
	default:
		log.Warn("failed to read script config, keeping current script body", "err", err)
	}

	return nil
}

// Save writes the key/value artifact and then the script body. The snapshot is
// only updated when both writes succeed; a failed first write skips the second.
func (s *State) Save(dst Sink) error {
	values := s.current

	if !isSingleLine(values.SSID) || !isSingleLine(values.Secret) {
		return &errdefs.WriteFailedError{Artifact: errdefs.ArtifactConfig, Err: errMultiline}
	}

	creds := Credentials{SSID: values.SSID, Secret: values.Secret}
	if err := dst.WriteConfig(EncodeKeyValues(creds)); err != nil {
		return &errdefs.WriteFailedError{Artifact: errdefs.ArtifactConfig, Err: err}
	}

	if err := dst.WriteScript([]byte(values.ScriptBody)); err != nil {
		return &errdefs.WriteFailedError{Artifact: errdefs.ArtifactScript, Err: err}
	}

	s.markSaved(values)
	return nil
}

func (s *State) markSaved(values Values) {
	s.saved = values
}
