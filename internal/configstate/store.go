package configstate

import (
	"github.com/AvengeMedia/dankimage/internal/errdefs"
	"github.com/AvengeMedia/dankimage/internal/scripts"
	"github.com/spf13/afero"
)

const artifactMode = 0644

// FolderStore keeps both artifacts inside a scripts folder.
type FolderStore struct {
	Fs     afero.Fs
	Folder scripts.Folder
}

func NewFolderStore(fs afero.Fs, dir string) *FolderStore {
	return &FolderStore{Fs: fs, Folder: scripts.Folder{Dir: dir}}
}

func (f *FolderStore) ReadConfig() ([]byte, error) {
	if !f.Folder.IsSet() {
		return nil, errdefs.ErrNoScriptsFolder
	}
	return afero.ReadFile(f.Fs, f.Folder.ConfigPath())
}

func (f *FolderStore) ReadScript() ([]byte, error) {
	if !f.Folder.IsSet() {
		return nil, errdefs.ErrNoScriptsFolder
	}
	return afero.ReadFile(f.Fs, f.Folder.ScriptConfigPath())
}

func (f *FolderStore) WriteConfig(data []byte) error {
	if !f.Folder.IsSet() {
		return errdefs.ErrNoScriptsFolder
	}
	return afero.WriteFile(f.Fs, f.Folder.ConfigPath(), data, artifactMode)
}

func (f *FolderStore) WriteScript(data []byte) error {
	if !f.Folder.IsSet() {
		return errdefs.ErrNoScriptsFolder
	}
	return afero.WriteFile(f.Fs, f.Folder.ScriptConfigPath(), data, artifactMode)
}

// HasConfig reports whether the key/value artifact is present.
func (f *FolderStore) HasConfig() bool {
	if !f.Folder.IsSet() {
		return false
	}
	ok, err := afero.Exists(f.Fs, f.Folder.ConfigPath())
	return err == nil && ok
}
