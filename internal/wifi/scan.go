package wifi

import (
	"fmt"

	"github.com/AvengeMedia/dankimage/internal/log"
	"github.com/Wifx/gonetworkmanager/v2"
)

// Scan asks NetworkManager for the access points visible to the first wifi
// device. A rescan is requested but the cached list is returned right away.
func Scan() ([]Network, error) {
	nm, err := gonetworkmanager.NewNetworkManager()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NetworkManager: %w", err)
	}

	w, err := wifiDevice(nm)
	if err != nil {
		return nil, err
	}

	if err := w.RequestScan(); err != nil {
		log.Debugf("scan request failed: %v", err)
	}

	apPaths, err := w.GetAccessPoints()
	if err != nil {
		return nil, fmt.Errorf("failed to get access points: %w", err)
	}

	aps := make([]Network, 0, len(apPaths))
	for _, ap := range apPaths {
		ssid, err := ap.GetPropertySSID()
		if err != nil || ssid == "" {
			continue
		}

		strength, _ := ap.GetPropertyStrength()
		flags, _ := ap.GetPropertyFlags()
		wpaFlags, _ := ap.GetPropertyWPAFlags()
		rsnFlags, _ := ap.GetPropertyRSNFlags()
		freq, _ := ap.GetPropertyFrequency()
		bssid, _ := ap.GetPropertyHWAddress()

		secured := flags != uint32(gonetworkmanager.Nm80211APFlagsNone) ||
			wpaFlags != uint32(gonetworkmanager.Nm80211APSecNone) ||
			rsnFlags != uint32(gonetworkmanager.Nm80211APSecNone)

		aps = append(aps, Network{
			SSID:      ssid,
			BSSID:     bssid,
			Signal:    strength,
			Secured:   secured,
			Frequency: freq,
			Channel:   frequencyToChannel(freq),
		})
	}

	networks := Dedupe(aps)
	log.Debugf("WiFi scan found %d networks from %d access points", len(networks), len(aps))
	return networks, nil
}

func wifiDevice(nm gonetworkmanager.NetworkManager) (gonetworkmanager.DeviceWireless, error) {
	devices, err := nm.GetDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to get devices: %w", err)
	}

	for _, dev := range devices {
		devType, err := dev.GetPropertyDeviceType()
		if err != nil || devType != gonetworkmanager.NmDeviceTypeWifi {
			continue
		}
		w, err := gonetworkmanager.NewDeviceWireless(dev.GetPath())
		if err != nil {
			continue
		}
		return w, nil
	}

	return nil, fmt.Errorf("no WiFi device available")
}
