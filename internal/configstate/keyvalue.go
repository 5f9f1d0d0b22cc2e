package configstate

import (
	"strings"
)

const (
	KeySSID   = "WIFI_SSID"
	KeySecret = "WIFI_PASS"
)

// Credentials are the two values carried by the key/value artifact.
type Credentials struct {
	SSID   string
	Secret string
}

// Presence records which known keys a parsed artifact carried.
type Presence struct {
	SSID   bool
	Secret bool
}

// ParseKeyValues reads KEY=value lines. Keys are compared after trimming
// surrounding blanks; the value is everything after the first '=' with a
// trailing carriage return removed. The first occurrence of a key wins and
// lines that are not KEY=value, or carry an unknown key, are ignored. A key
// that never appears yields an empty value and a false Presence flag.
func ParseKeyValues(data []byte) (Credentials, Presence) {
	var creds Credentials
	var found Presence

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		switch key {
		case KeySSID:
			if !found.SSID {
				creds.SSID = value
				found.SSID = true
			}
		case KeySecret:
			if !found.Secret {
				creds.Secret = value
				found.Secret = true
			}
		}
	}

	return creds, found
}

// EncodeKeyValues renders exactly the two known lines, SSID first.
func EncodeKeyValues(creds Credentials) []byte {
	var b strings.Builder
	b.WriteString(KeySSID)
	b.WriteByte('=')
	b.WriteString(creds.SSID)
	b.WriteByte('\n')
	b.WriteString(KeySecret)
	b.WriteByte('=')
	b.WriteString(creds.Secret)
	b.WriteByte('\n')
	return []byte(b.String())
}

func isSingleLine(s string) bool {
	return !strings.ContainsAny(s, "\r\n")
}
