package wgtools

import (
	"net"
	"net/netip"
	"testing"
	"time"

	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"
)

func testDevice(t *testing.T) *wgtypes.Device {
	t.Helper()

	private, err := wgtypes.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() failed: %v", err)
	}
	peerKey, _ := wgtypes.GeneratePrivateKey()
	psk, _ := wgtypes.GenerateKey()

	_, v4, _ := net.ParseCIDR("10.0.0.2/32")
	_, v6, _ := net.ParseCIDR("fd00::/64")

	return &wgtypes.Device{
		Name:         "wg0",
		Type:         wgtypes.LinuxKernel,
		PrivateKey:   private,
		PublicKey:    private.PublicKey(),
		ListenPort:   51820,
		FirewallMark: 0xca6c,
		Peers: []wgtypes.Peer{{
			PublicKey:                   peerKey.PublicKey(),
			PresharedKey:                psk,
			Endpoint:                    &net.UDPAddr{IP: net.ParseIP("192.0.2.1"), Port: 51820},
			PersistentKeepaliveInterval: 25 * time.Second,
			LastHandshakeTime:           time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			ReceiveBytes:                1024,
			TransmitBytes:               2048,
			AllowedIPs:                  []net.IPNet{*v4, *v6},
		}},
	}
}

func TestFromDevice(t *testing.T) {
	device := testDevice(t)
	iface := FromDevice(device, false)

	if iface.Name != "wg0" || iface.ListeningPort != 51820 {
		t.Errorf("iface = %+v", iface)
	}
	if iface.PublicKey != device.PublicKey.String() {
		t.Errorf("PublicKey = %q, want %q", iface.PublicKey, device.PublicKey.String())
	}
	if !iface.PrivateKeyHidden || iface.PrivateKey != "" {
		t.Error("private key should be hidden")
	}
	if iface.Fwmark != "0xca6c" {
		t.Errorf("Fwmark = %q, want 0xca6c", iface.Fwmark)
	}
	if iface.Extra["type"] != wgtypes.LinuxKernel.String() {
		t.Errorf("Extra[type] = %q", iface.Extra["type"])
	}

	if len(iface.Peers) != 1 {
		t.Fatalf("got %d peers, want 1", len(iface.Peers))
	}
	peer := iface.Peers[0]
	if !peer.PresharedKeyHidden || peer.PresharedKey != "" {
		t.Error("preshared key should be hidden")
	}
	if peer.Endpoint != "192.0.2.1:51820" {
		t.Errorf("Endpoint = %q", peer.Endpoint)
	}
	if peer.LatestHandshake != "2026-01-02T03:04:05Z" {
		t.Errorf("LatestHandshake = %q", peer.LatestHandshake)
	}
	if peer.Transfer == nil || peer.Transfer.Received != "1024 B" || peer.Transfer.Sent != "2048 B" {
		t.Errorf("Transfer = %+v", peer.Transfer)
	}
	if peer.PersistentKeepalive != "every 25s" {
		t.Errorf("PersistentKeepalive = %q", peer.PersistentKeepalive)
	}

	want := []netip.Prefix{
		netip.MustParsePrefix("10.0.0.2/32"),
		netip.MustParsePrefix("fd00::/64"),
	}
	if len(peer.AllowedIPs) != len(want) {
		t.Fatalf("AllowedIPs = %v, want %v", peer.AllowedIPs, want)
	}
	for i := range want {
		if peer.AllowedIPs[i] != want[i] {
			t.Errorf("AllowedIPs[%d] = %v, want %v", i, peer.AllowedIPs[i], want[i])
		}
	}
}

func TestFromDeviceShowKeys(t *testing.T) {
	device := testDevice(t)
	iface := FromDevice(device, true)

	if iface.PrivateKey != device.PrivateKey.String() {
		t.Error("private key not copied with showKeys")
	}
	if iface.Peers[0].PresharedKey != device.Peers[0].PresharedKey.String() {
		t.Error("preshared key not copied with showKeys")
	}

	kp := Keypair{Public: iface.PublicKey, Private: iface.PrivateKey}
	if err := kp.Verify(); err != nil {
		t.Errorf("Verify() failed: %v", err)
	}
}

func TestFromDeviceEmpty(t *testing.T) {
	iface := FromDevice(&wgtypes.Device{Name: "wg1"}, false)
	if iface.PublicKey != "" || iface.PrivateKeyHidden || iface.Fwmark != "" || iface.Extra != nil {
		t.Errorf("unexpected fields on empty device: %+v", iface)
	}
	if iface.Peers == nil {
		t.Error("Peers should be an empty slice, not nil")
	}
}
