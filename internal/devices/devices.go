package devices

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/AvengeMedia/dankimage/internal/log"
)

const DefaultTimeout = 3 * time.Second

// NoDevicesPlaceholder is shown in place of an empty device list.
const NoDevicesPlaceholder = "No devices found"

var virtualPrefixes = []string{"loop", "ram", "zram"}

var lsblkCommand = func(ctx context.Context) *exec.Cmd {
	return exec.CommandContext(ctx, "lsblk", "-dpno", "NAME,SIZE,MODEL")
}

type Device struct {
	Name  string
	Size  string
	Model string
}

func (d Device) String() string {
	parts := []string{d.Name}
	if d.Size != "" {
		parts = append(parts, d.Size)
	}
	if d.Model != "" {
		parts = append(parts, d.Model)
	}
	return strings.Join(parts, " ")
}

// List enumerates whole block devices. Without a deadline on ctx,
// DefaultTimeout applies.
func List(ctx context.Context) ([]Device, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := lsblkCommand(ctx)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("lsblk timed out: %w", ctx.Err())
		}
		return nil, fmt.Errorf("lsblk failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	devs := Parse(stdout.String())
	log.Debugf("Found %d block devices", len(devs))
	return devs, nil
}

// Parse reads `lsblk -dpno NAME,SIZE,MODEL` output, dropping virtual
// devices. MODEL may be blank or contain spaces.
func Parse(output string) []Device {
	var devs []Device
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		d := Device{Name: fields[0]}
		if len(fields) > 1 {
			d.Size = fields[1]
		}
		if len(fields) > 2 {
			d.Model = strings.Join(fields[2:], " ")
		}

		if isVirtual(d.Name) {
			continue
		}
		devs = append(devs, d)
	}
	return devs
}

// DeviceFromLine extracts the device path from a rendered list entry.
func DeviceFromLine(line string) string {
	line = strings.TrimSpace(line)
	if line == NoDevicesPlaceholder {
		return ""
	}
	name, _, _ := strings.Cut(line, " ")
	return name
}

func isVirtual(name string) bool {
	base := name[strings.LastIndex(name, "/")+1:]
	for _, p := range virtualPrefixes {
		if strings.HasPrefix(base, p) {
			return true
		}
	}
	return false
}
