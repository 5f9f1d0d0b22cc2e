package configstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeyValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Credentials
		found Presence
	}{
		{
			name:  "unknown keys ignored",
			input: "WIFI_SSID=MyNet\nJUNK=ignored\nWIFI_PASS=secret\n",
			want:  Credentials{SSID: "MyNet", Secret: "secret"},
			found: Presence{SSID: true, Secret: true},
		},
		{
			name:  "first match wins",
			input: "WIFI_SSID=first\nWIFI_SSID=second\nWIFI_PASS=a\nWIFI_PASS=b\n",
			want:  Credentials{SSID: "first", Secret: "a"},
			found: Presence{SSID: true, Secret: true},
		},
		{
			name:  "crlf line endings",
			input: "WIFI_SSID=Office\r\nWIFI_PASS=pw\r\n",
			want:  Credentials{SSID: "Office", Secret: "pw"},
			found: Presence{SSID: true, Secret: true},
		},
		{
			name:  "value keeps spaces and equals signs",
			input: "WIFI_SSID=My Net\nWIFI_PASS=a=b= c\n",
			want:  Credentials{SSID: "My Net", Secret: "a=b= c"},
			found: Presence{SSID: true, Secret: true},
		},
		{
			name:  "blank around key",
			input: "  WIFI_SSID =Lab\n",
			want:  Credentials{SSID: "Lab"},
			found: Presence{SSID: true},
		},
		{
			name:  "lines without equals and comments",
			input: "# comment\nnonsense\n=orphan\nWIFI_PASS=x",
			want:  Credentials{Secret: "x"},
			found: Presence{Secret: true},
		},
		{
			name:  "prefixed key is a different key",
			input: "MY_WIFI_SSID=wrong\nWIFI_SSID=right\n",
			want:  Credentials{SSID: "right"},
			found: Presence{SSID: true},
		},
		{
			name:  "empty value is still present",
			input: "WIFI_PASS=\n",
			want:  Credentials{},
			found: Presence{Secret: true},
		},
		{
			name:  "empty input",
			input: "",
			want:  Credentials{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, found := ParseKeyValues([]byte(tt.input))
			assert.Equal(t, tt.want, creds)
			assert.Equal(t, tt.found, found)
		})
	}
}

func TestEncodeKeyValues(t *testing.T) {
	got := EncodeKeyValues(Credentials{SSID: "HomeNet", Secret: "p@ss 1"})
	assert.Equal(t, "WIFI_SSID=HomeNet\nWIFI_PASS=p@ss 1\n", string(got))

	assert.Equal(t, "WIFI_SSID=\nWIFI_PASS=\n", string(EncodeKeyValues(Credentials{})))
}
