package wgtools

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"time"

	"golang.zx2c4.com/wireguard/wgctrl"
	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"
)

// ReadDevice reads one interface through the kernel or userspace control
// socket instead of the wg binary.
func ReadDevice(name string) (*Interface, error) {
	client, err := wgctrl.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create wgctrl client: %w", err)
	}
	defer client.Close()

	device, err := client.Device(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get device %s: %w", name, err)
	}

	iface := FromDevice(device, false)
	return &iface, nil
}

// ReadDevices reads every WireGuard interface through wgctrl.
func ReadDevices() ([]Interface, error) {
	client, err := wgctrl.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create wgctrl client: %w", err)
	}
	defer client.Close()

	devices, err := client.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	ifaces := make([]Interface, 0, len(devices))
	for _, device := range devices {
		ifaces = append(ifaces, FromDevice(device, false))
	}
	return ifaces, nil
}

// FromDevice converts a wgctrl device into the same shape `wg show` output is
// parsed into. Secrets are only copied when showKeys is set; otherwise they
// are reported as hidden, matching wg.
func FromDevice(device *wgtypes.Device, showKeys bool) Interface {
	var zero wgtypes.Key

	iface := Interface{
		Name:          device.Name,
		ListeningPort: device.ListenPort,
		Peers:         make([]Peer, 0, len(device.Peers)),
	}
	if device.PublicKey != zero {
		iface.PublicKey = device.PublicKey.String()
	}
	if device.PrivateKey != zero {
		if showKeys {
			iface.PrivateKey = device.PrivateKey.String()
		} else {
			iface.PrivateKeyHidden = true
		}
	}
	if device.FirewallMark != 0 {
		iface.Fwmark = fmt.Sprintf("0x%x", device.FirewallMark)
	}
	if device.Type != wgtypes.Unknown {
		iface.Extra = map[string]string{"type": device.Type.String()}
	}

	for _, p := range device.Peers {
		peer := Peer{
			PublicKey:  p.PublicKey.String(),
			AllowedIPs: prefixesFromIPNets(p.AllowedIPs),
		}
		if p.PresharedKey != zero {
			if showKeys {
				peer.PresharedKey = p.PresharedKey.String()
			} else {
				peer.PresharedKeyHidden = true
			}
		}
		if p.Endpoint != nil {
			peer.Endpoint = p.Endpoint.String()
		}
		if !p.LastHandshakeTime.IsZero() {
			peer.LatestHandshake = p.LastHandshakeTime.UTC().Format(time.RFC3339)
		}
		if p.ReceiveBytes != 0 || p.TransmitBytes != 0 {
			peer.Transfer = &Transfer{
				Received: strconv.FormatInt(p.ReceiveBytes, 10) + " B",
				Sent:     strconv.FormatInt(p.TransmitBytes, 10) + " B",
			}
		}
		if p.PersistentKeepaliveInterval > 0 {
			peer.PersistentKeepalive = "every " + p.PersistentKeepaliveInterval.String()
		}
		iface.Peers = append(iface.Peers, peer)
	}

	return iface
}

func prefixesFromIPNets(nets []net.IPNet) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(nets))
	for _, n := range nets {
		addr, ok := netip.AddrFromSlice(n.IP)
		if !ok {
			continue
		}
		ones, _ := n.Mask.Size()
		prefixes = append(prefixes, netip.PrefixFrom(addr.Unmap(), ones))
	}
	return prefixes
}
