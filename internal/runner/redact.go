package runner

import "strings"

var sensitiveFlags = map[string]struct{}{
	"--pass":      {},
	"--password":  {},
	"--psk":       {},
	"--secret":    {},
	"--token":     {},
	"--wifi-pass": {},
}

// RedactArgs returns a copy of args with the values of secret-carrying flags
// replaced, for logging.
func RedactArgs(args []string) []string {
	redacted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if idx := strings.IndexByte(arg, '='); idx > 0 && isSensitiveFlag(arg[:idx]) {
			redacted = append(redacted, arg[:idx]+"=<redacted>")
			continue
		}

		if isSensitiveFlag(arg) {
			redacted = append(redacted, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				redacted = append(redacted, "<redacted>")
				i++
			}
			continue
		}

		redacted = append(redacted, arg)
	}
	return redacted
}

func isSensitiveFlag(flag string) bool {
	if !strings.HasPrefix(flag, "-") {
		return false
	}
	_, ok := sensitiveFlags[strings.ToLower(strings.TrimSpace(flag))]
	return ok
}
