package wgtools

import (
	"fmt"
)

// ClearPeers removes every peer from iface in a single `wg set` call. The name
// "all" clears every interface.
func (t *Tool) ClearPeers(iface string) error {
	switch iface {
	case ShowTargetInterfaces:
		return fmt.Errorf("%w: %q", ErrReservedInterface, iface)
	case ShowTargetAll:
		return t.ClearAllPeers()
	}

	status, err := t.Show(iface)
	if err != nil {
		return err
	}
	if len(status.Peers) == 0 {
		return nil
	}

	cfg := SetConfig{Peers: make([]PeerConfig, len(status.Peers))}
	for i, peer := range status.Peers {
		cfg.Peers[i] = PeerConfig{PublicKey: peer.PublicKey, Remove: true}
	}

	t.logger().Debug("clearing peers", "interface", iface, "count", len(cfg.Peers))
	return t.Set(iface, cfg)
}

// ClearAllPeers removes every peer from every WireGuard interface.
func (t *Tool) ClearAllPeers() error {
	names, err := t.ShowInterfaces()
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := t.ClearPeers(name); err != nil {
			return err
		}
	}
	return nil
}

// ClearPeers removes all peers from iface using the default Tool.
func ClearPeers(iface string) error {
	return Default().ClearPeers(iface)
}

// ClearAllPeers removes all peers from all interfaces using the default Tool.
func ClearAllPeers() error {
	return Default().ClearAllPeers()
}
