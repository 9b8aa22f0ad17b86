package wgtools

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// SetConfig describes a `wg set` invocation. Zero values leave the
// corresponding setting untouched.
type SetConfig struct {
	ListenPort int
	Fwmark     string
	// PrivateKeyFile is a path; wg reads the key from the file.
	PrivateKeyFile string
	Peers          []PeerConfig
}

// PeerConfig describes the settings applied to one peer.
type PeerConfig struct {
	PublicKey string
	Remove    bool
	// PresharedKeyFile is a path; wg reads the key from the file.
	PresharedKeyFile    string
	Endpoint            string
	PersistentKeepalive int
	AllowedIPs          []netip.Prefix
}

// Args returns the arguments passed to wg for iface, without the wg command
// itself.
func (c SetConfig) Args(iface string) []string {
	args := []string{"set", iface}

	if c.ListenPort != 0 {
		args = append(args, "listen-port", strconv.Itoa(c.ListenPort))
	}
	if c.Fwmark != "" {
		args = append(args, "fwmark", c.Fwmark)
	}
	if c.PrivateKeyFile != "" {
		args = append(args, "private-key", c.PrivateKeyFile)
	}

	for _, peer := range c.Peers {
		args = append(args, peer.args()...)
	}
	return args
}

func (p PeerConfig) args() []string {
	args := []string{"peer", p.PublicKey}

	if p.Remove {
		args = append(args, "remove")
	}
	if p.PresharedKeyFile != "" {
		args = append(args, "preshared-key", p.PresharedKeyFile)
	}
	if p.Endpoint != "" {
		args = append(args, "endpoint", p.Endpoint)
	}
	if p.PersistentKeepalive != 0 {
		args = append(args, "persistent-keepalive", strconv.Itoa(p.PersistentKeepalive))
	}
	if len(p.AllowedIPs) > 0 {
		ips := make([]string, len(p.AllowedIPs))
		for i, prefix := range p.AllowedIPs {
			ips[i] = prefix.String()
		}
		args = append(args, "allowed-ips", strings.Join(ips, ","))
	}
	return args
}

// Set applies cfg to iface with `wg set`.
func (t *Tool) Set(iface string, cfg SetConfig) error {
	if iface == "" {
		return fmt.Errorf("interface name is required")
	}
	if iface == ShowTargetAll || iface == ShowTargetInterfaces {
		return fmt.Errorf("%w: %q", ErrReservedInterface, iface)
	}
	for _, peer := range cfg.Peers {
		if peer.PublicKey == "" {
			return fmt.Errorf("peer public key is required")
		}
	}

	if _, err := t.run(nil, cfg.Args(iface)...); err != nil {
		return fmt.Errorf("failed to configure %s: %w", iface, err)
	}
	return nil
}

// Set applies cfg to iface using the default Tool.
func Set(iface string, cfg SetConfig) error {
	return Default().Set(iface, cfg)
}
