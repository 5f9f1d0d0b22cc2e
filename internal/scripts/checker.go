package scripts

import (
	"fmt"

	"github.com/AvengeMedia/dankimage/internal/errdefs"
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// Checker answers the exists / is-executable questions asked before a script
// is handed to a runner.
type Checker struct {
	Fs afero.Fs
}

func NewChecker(fs afero.Fs) *Checker {
	return &Checker{Fs: fs}
}

func (c *Checker) Exists(path string) bool {
	_, err := c.Fs.Stat(path)
	return err == nil
}

// IsExecutable reports whether path is a regular file the current user may
// execute. On the real filesystem the kernel is asked via access(2); other
// filesystems fall back to the permission bits.
func (c *Checker) IsExecutable(path string) bool {
	info, err := c.Fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if _, ok := c.Fs.(*afero.OsFs); ok {
		return unix.Access(path, unix.X_OK) == nil
	}
	return info.Mode().Perm()&0111 != 0
}

// Require returns ErrTypeScriptNotExecutable unless path exists and is executable.
func (c *Checker) Require(path string) error {
	if !c.Exists(path) || !c.IsExecutable(path) {
		return errdefs.NewCustomError(errdefs.ErrTypeScriptNotExecutable,
			fmt.Sprintf("script not found or not executable: %s", path))
	}
	return nil
}
