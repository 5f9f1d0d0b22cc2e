package scripts

import (
	"os"
	"path/filepath"
)

const (
	ConfigFile       = "config.txt"
	ScriptConfigFile = "script_config.txt"

	ChangeConfigScript = "change_config.sh"
	BuildImageScript   = "build_image.sh"
	WriteSDScript      = "write_sd.sh"

	defaultFolderName = "Scripts"
)

// Folder is the directory holding the helper scripts and their two artifacts.
type Folder struct {
	Dir string
}

func (f Folder) IsSet() bool {
	return f.Dir != ""
}

func (f Folder) Path(name string) string {
	return filepath.Join(f.Dir, name)
}

func (f Folder) ConfigPath() string       { return f.Path(ConfigFile) }
func (f Folder) ScriptConfigPath() string { return f.Path(ScriptConfigFile) }
func (f Folder) ChangeConfigPath() string { return f.Path(ChangeConfigScript) }
func (f Folder) BuildImagePath() string   { return f.Path(BuildImageScript) }
func (f Folder) WriteSDPath() string      { return f.Path(WriteSDScript) }

// DefaultDir is the Scripts directory next to the running executable.
func DefaultDir() string {
	exe, err := os.Executable()
	if err != nil {
		return defaultFolderName
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), defaultFolderName)
}
