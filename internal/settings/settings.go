package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AvengeMedia/dankimage/internal/runner"
	"github.com/AvengeMedia/dankimage/internal/scripts"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyScriptsDir    = "scripts_dir"
	KeyElevator      = "elevator"
	KeyLogLevel      = "log_level"
	KeyDeviceTimeout = "device_timeout"

	appName         = "dankimage"
	envPrefix       = "dankimage"
	configFileName  = "config.yaml"
	defaultLogLevel = "info"
	defaultTimeout  = 3 * time.Second
)

// Settings is the application's own configuration, separate from the two
// artifacts kept in the scripts folder.
type Settings struct {
	v       *viper.Viper
	fs      afero.Fs
	path    string
	changed map[string]any
}

// DefaultPath returns $XDG_CONFIG_HOME/dankimage/config.yaml, falling back
// to ~/.config when XDG_CONFIG_HOME is not set.
func DefaultPath() (string, error) {
	base, set := os.LookupEnv("XDG_CONFIG_HOME")
	if !set || base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName, configFileName), nil
}

// Load reads path, creating it with defaults when it does not exist yet.
func Load(fs afero.Fs, path string) (*Settings, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyScriptsDir, scripts.DefaultDir())
	v.SetDefault(KeyElevator, runner.DefaultElevator)
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyDeviceTimeout, defaultTimeout)

	s := &Settings{v: v, fs: fs, path: path, changed: map[string]any{}}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if exists {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return s, nil
	}

	if err := s.Save(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Path() string {
	return s.path
}

func (s *Settings) ScriptsDir() string {
	return os.ExpandEnv(s.v.GetString(KeyScriptsDir))
}

func (s *Settings) SetScriptsDir(dir string) {
	s.v.Set(KeyScriptsDir, dir)
	s.changed[KeyScriptsDir] = dir
}

func (s *Settings) Elevator() string {
	return s.v.GetString(KeyElevator)
}

func (s *Settings) LogLevel() string {
	return s.v.GetString(KeyLogLevel)
}

func (s *Settings) DeviceTimeout() time.Duration {
	d := s.v.GetDuration(KeyDeviceTimeout)
	if d <= 0 {
		return defaultTimeout
	}
	return d
}

// BindFlags lets command-line flags override the matching settings. Flags
// that are not defined on fs are skipped.
func (s *Settings) BindFlags(fs *pflag.FlagSet) error {
	bindings := map[string]string{
		KeyScriptsDir: "scripts-dir",
		KeyElevator:   "elevator",
		KeyLogLevel:   "log-level",
	}
	for key, flag := range bindings {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := s.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", flag, err)
		}
	}
	return nil
}

// Save writes the settings file, creating its directory if needed. Only the
// values already in the file and those changed through setters are written;
// flag and environment overrides stay out of it.
func (s *Settings) Save() error {
	out := viper.New()
	out.SetFs(s.fs)
	out.SetConfigType("yaml")

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", s.path, err)
	}
	if exists {
		out.SetConfigFile(s.path)
		if err := out.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read %s: %w", s.path, err)
		}
	} else {
		out.Set(KeyScriptsDir, scripts.DefaultDir())
		out.Set(KeyElevator, runner.DefaultElevator)
		out.Set(KeyLogLevel, defaultLogLevel)
		out.Set(KeyDeviceTimeout, defaultTimeout.String())
	}
	for key, value := range s.changed {
		out.Set(key, value)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := out.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	clear(s.changed)
	return nil
}
