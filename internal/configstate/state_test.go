package configstate

import (
	"errors"
	"io/fs"
	"math/rand"
	"testing"

	"github.com/AvengeMedia/dankimage/internal/errdefs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const folder = "/opt/scripts"

func newStore(t *testing.T) *FolderStore {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(folder, 0755))
	return NewFolderStore(fs, folder)
}

// memSink records writes and can fail either artifact.
type memSink struct {
	config      []byte
	script      []byte
	failConfig  bool
	failScript  bool
	scriptCalls int
}

func (m *memSink) WriteConfig(data []byte) error {
	if m.failConfig {
		return errors.New("disk full")
	}
	m.config = data
	return nil
}

func (m *memSink) WriteScript(data []byte) error {
	m.scriptCalls++
	if m.failScript {
		return errors.New("permission denied")
	}
	m.script = data
	return nil
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store := newStore(t)

	s := New()
	s.SetSSID("HomeNet")
	s.SetSecret("p@ss 1")
	s.SetScriptBody("echo hi\n")
	require.True(t, s.IsDirty())

	require.NoError(t, s.Save(store))
	assert.False(t, s.IsDirty())

	config, err := afero.ReadFile(store.Fs, store.Folder.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, "WIFI_SSID=HomeNet\nWIFI_PASS=p@ss 1\n", string(config))

	script, err := afero.ReadFile(store.Fs, store.Folder.ScriptConfigPath())
	require.NoError(t, err)
	assert.Equal(t, "echo hi\n", string(script))

	loaded := New()
	require.NoError(t, loaded.Load(store))
	assert.False(t, loaded.IsDirty())
	assert.Equal(t, Values{SSID: "HomeNet", Secret: "p@ss 1", ScriptBody: "echo hi\n"}, loaded.Current())
	assert.Equal(t, loaded.Current(), loaded.Snapshot())
}

func TestLoadClearsDirtyFlag(t *testing.T) {
	store := newStore(t)
	require.NoError(t, afero.WriteFile(store.Fs, store.Folder.ConfigPath(), []byte("WIFI_SSID=Lab\nWIFI_PASS=x\n"), 0644))
	require.NoError(t, afero.WriteFile(store.Fs, store.Folder.ScriptConfigPath(), []byte("GPIO_PIN=17\n"), 0644))

	s := New()
	s.SetSSID("edited")
	s.SetScriptBody("edited")
	require.True(t, s.IsDirty())

	require.NoError(t, s.Load(store))
	assert.False(t, s.IsDirty())
	assert.Equal(t, "Lab", s.SSID())
	assert.Equal(t, "x", s.Secret())
	assert.Equal(t, "GPIO_PIN=17\n", s.ScriptBody())
}

func TestLoadAbsentKeyKeepsField(t *testing.T) {
	store := newStore(t)
	require.NoError(t, afero.WriteFile(store.Fs, store.Folder.ConfigPath(), []byte("WIFI_SSID=Home\nWIFI_PASS=pw\n"), 0644))

	s := New()
	require.NoError(t, s.Load(store))
	assert.Equal(t, "pw", s.Secret())

	require.NoError(t, afero.WriteFile(store.Fs, store.Folder.ConfigPath(), []byte("WIFI_SSID=Other\n"), 0644))
	require.NoError(t, s.Load(store))
	assert.Equal(t, "Other", s.SSID())
	assert.Equal(t, "pw", s.Secret())
	assert.Equal(t, "pw", s.Snapshot().Secret)
	assert.False(t, s.IsDirty())

	s.SetSecret("edited")
	require.NoError(t, afero.WriteFile(store.Fs, store.Folder.ConfigPath(), []byte("# nothing here\n"), 0644))
	require.NoError(t, s.Load(store))
	assert.Equal(t, "Other", s.SSID())
	assert.Equal(t, "edited", s.Secret())
	assert.True(t, s.IsDirty())
}

func TestLoadMissingConfigIsSourceUnavailable(t *testing.T) {
	store := newStore(t)

	s := New()
	s.SetSSID("keep")
	s.SetSecret("me")

	err := s.Load(store)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errdefs.ErrSourceUnavailable))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	assert.Equal(t, "keep", s.SSID())
	assert.Equal(t, "me", s.Secret())
	assert.True(t, s.IsDirty())
}

func TestLoadWithoutScriptBodyKeepsScriptField(t *testing.T) {
	store := newStore(t)
	require.NoError(t, afero.WriteFile(store.Fs, store.Folder.ConfigPath(), []byte("WIFI_SSID=a\nWIFI_PASS=b\n"), 0644))

	s := New()
	s.SetScriptBody("unsaved body")

	require.NoError(t, s.Load(store))
	assert.Equal(t, "a", s.SSID())
	assert.Equal(t, "unsaved body", s.ScriptBody())
	assert.Equal(t, "", s.Snapshot().ScriptBody)
	assert.True(t, s.IsDirty())
}

func TestSaveConfigFailureSkipsScriptAndKeepsSnapshot(t *testing.T) {
	sink := &memSink{failConfig: true}

	s := New()
	s.SetSSID("net")
	before := s.Snapshot()

	err := s.Save(sink)
	require.Error(t, err)

	var wf *errdefs.WriteFailedError
	require.True(t, errors.As(err, &wf))
	assert.Equal(t, errdefs.ArtifactConfig, wf.Artifact)
	assert.True(t, errors.Is(err, errdefs.ErrWriteFailed))

	assert.Equal(t, 0, sink.scriptCalls)
	assert.Equal(t, before, s.Snapshot())
	assert.True(t, s.IsDirty())
}

func TestSaveScriptFailureLeavesConfigPersistedButDirty(t *testing.T) {
	sink := &memSink{failScript: true}

	s := New()
	s.SetSSID("net")
	s.SetSecret("pw")

	err := s.Save(sink)

	var wf *errdefs.WriteFailedError
	require.True(t, errors.As(err, &wf))
	assert.Equal(t, errdefs.ArtifactScript, wf.Artifact)
	assert.Contains(t, err.Error(), "script_config.txt")

	assert.Equal(t, "WIFI_SSID=net\nWIFI_PASS=pw\n", string(sink.config))
	assert.True(t, s.IsDirty())
	assert.Equal(t, Values{}, s.Snapshot())
}

func TestSaveRejectsMultilineValues(t *testing.T) {
	sink := &memSink{}

	s := New()
	s.SetSSID("two\nlines")

	err := s.Save(sink)
	var wf *errdefs.WriteFailedError
	require.True(t, errors.As(err, &wf))
	assert.Equal(t, errdefs.ArtifactConfig, wf.Artifact)
	assert.Nil(t, sink.config)
	assert.True(t, s.IsDirty())
}

func TestSaveWithoutFolder(t *testing.T) {
	store := NewFolderStore(afero.NewMemMapFs(), "")

	s := New()
	s.SetSSID("x")
	err := s.Save(store)
	assert.True(t, errors.Is(err, errdefs.ErrNoScriptsFolder))
	assert.False(t, store.HasConfig())
}

func TestDirtyMatchesSnapshotComparison(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	words := []string{"", "a", "b", "HomeNet", "p@ss 1", "echo hi\n"}

	store := newStore(t)
	s := New()
	require.NoError(t, s.Save(store))
	saved := Values{}

	for i := 0; i < 500; i++ {
		switch rng.Intn(6) {
		case 0:
			s.SetSSID(words[rng.Intn(len(words)-1)])
		case 1:
			s.SetSecret(words[rng.Intn(len(words)-1)])
		case 2:
			s.SetScriptBody(words[rng.Intn(len(words))])
		case 3:
			require.NoError(t, s.Save(store))
			saved = s.Current()
		case 4:
			require.NoError(t, s.Load(store))
			assert.Equal(t, saved, s.Current(), "step %d", i)
		case 5:
			// no edit
		}

		assert.Equal(t, saved, s.Snapshot(), "step %d", i)
		assert.Equal(t, s.Current() != saved, s.IsDirty(), "step %d", i)
	}
}
