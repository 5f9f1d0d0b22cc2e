package wifi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDedupeKeepsStrongest(t *testing.T) {
	aps := []Network{
		{SSID: "HomeNet", BSSID: "aa", Signal: 40, Secured: true},
		{SSID: "", BSSID: "hidden", Signal: 99},
		{SSID: "Cafe", BSSID: "bb", Signal: 70},
		{SSID: "HomeNet", BSSID: "cc", Signal: 85, Secured: true},
		{SSID: "Lab", BSSID: "dd", Signal: 70, Secured: true},
	}

	want := []Network{
		{SSID: "HomeNet", BSSID: "cc", Signal: 85, Secured: true},
		{SSID: "Cafe", BSSID: "bb", Signal: 70},
		{SSID: "Lab", BSSID: "dd", Signal: 70, Secured: true},
	}

	if diff := cmp.Diff(want, Dedupe(aps)); diff != "" {
		t.Errorf("Dedupe() mismatch (-want +got):\n%s", diff)
	}
}

func TestDedupeEmpty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}

func TestFrequencyToChannel(t *testing.T) {
	tests := []struct {
		freq uint32
		want uint32
	}{
		{2412, 1},
		{2437, 6},
		{2484, 14},
		{5180, 36},
		{5955, 1},
		{900, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, frequencyToChannel(tt.freq), "freq %d", tt.freq)
	}
}
