package runner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedactArgs(t *testing.T) {
	t.Parallel()

	args := []string{
		"/opt/scripts/change_config.sh",
		"--password",
		"hunter2",
		"--psk=topsecret",
		"--device",
		"/dev/sdb",
		"--secret",
		"--yes",
	}

	got := RedactArgs(args)
	require.Equal(t,
		[]string{
			"/opt/scripts/change_config.sh",
			"--password",
			"<redacted>",
			"--psk=<redacted>",
			"--device",
			"/dev/sdb",
			"--secret",
			"--yes",
		},
		got,
	)
	require.Equal(t, "hunter2", args[2])
}
