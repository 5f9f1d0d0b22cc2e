package wifi

import (
	"sort"
)

type Network struct {
	SSID      string
	BSSID     string
	Signal    uint8
	Secured   bool
	Frequency uint32
	Channel   uint32
}

// Dedupe collapses access points sharing an SSID into the strongest one and
// orders the result by signal. Hidden networks (empty SSID) are dropped.
func Dedupe(aps []Network) []Network {
	seen := make(map[string]int)
	networks := []Network{}

	for _, ap := range aps {
		if ap.SSID == "" {
			continue
		}
		if idx, exists := seen[ap.SSID]; exists {
			if ap.Signal > networks[idx].Signal {
				networks[idx] = ap
			}
			continue
		}
		seen[ap.SSID] = len(networks)
		networks = append(networks, ap)
	}

	sortNetworks(networks)
	return networks
}

func sortNetworks(networks []Network) {
	sort.SliceStable(networks, func(i, j int) bool {
		if networks[i].Signal != networks[j].Signal {
			return networks[i].Signal > networks[j].Signal
		}
		return networks[i].SSID < networks[j].SSID
	})
}

func frequencyToChannel(freq uint32) uint32 {
	if freq >= 2412 && freq <= 2484 {
		if freq == 2484 {
			return 14
		}
		return (freq-2412)/5 + 1
	}

	if freq >= 5170 && freq <= 5825 {
		return (freq-5170)/5 + 34
	}

	if freq >= 5955 && freq <= 7115 {
		return (freq-5955)/5 + 1
	}

	return 0
}
