package main

import (
	"fmt"
	"net/netip"
	"os"

	"github.com/kamikazebr/wgtools/internal/config"
	"github.com/kamikazebr/wgtools/internal/ui"
	"github.com/kamikazebr/wgtools/pkg/wgtools"
	"github.com/spf13/cobra"
)

var (
	showNative bool
	showRaw    bool
	showKeys   bool

	setListenPort   int
	setFwmark       string
	setPrivateKey   string
	setPeer         string
	setRemove       bool
	setPresharedKey string
	setEndpoint     string
	setKeepalive    int
	setAllowedIPs   []string

	clearYes bool
)

func initInterfaceFlags() {
	showCmd.Flags().BoolVar(&showNative, "native", false, "Read interfaces through the kernel API instead of wg")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print wg output unparsed")
	showCmd.Flags().BoolVar(&showKeys, "show-keys", false, "Include private and preshared keys (ignored with --native)")

	setCmd.Flags().IntVar(&setListenPort, "listen-port", 0, "UDP port to listen on")
	setCmd.Flags().StringVar(&setFwmark, "fwmark", "", "Firewall mark for outgoing packets (\"off\" to clear)")
	setCmd.Flags().StringVar(&setPrivateKey, "private-key", "", "File containing the interface private key")
	setCmd.Flags().StringVar(&setPeer, "peer", "", "Public key of the peer to change")
	setCmd.Flags().BoolVar(&setRemove, "remove", false, "Remove the peer")
	setCmd.Flags().StringVar(&setPresharedKey, "preshared-key", "", "File containing the peer preshared key")
	setCmd.Flags().StringVar(&setEndpoint, "endpoint", "", "Peer endpoint (host:port)")
	setCmd.Flags().IntVar(&setKeepalive, "persistent-keepalive", 0, "Keepalive interval in seconds")
	setCmd.Flags().StringSliceVar(&setAllowedIPs, "allowed-ips", nil, "Comma-separated CIDRs routed to the peer")

	clearPeersCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip confirmation prompt")
}

func runShow(cmd *cobra.Command, args []string) {
	target := wgtools.ShowTargetAll
	if len(args) > 0 {
		target = args[0]
	}

	tool := wgtools.Default()
	if showKeys {
		tool.Env = append(tool.Env, "WG_HIDE_KEYS=never")
	}

	if showRaw {
		text, err := tool.ShowRaw(target)
		if err != nil {
			fail("Error", err)
		}
		fmt.Println(text)
		return
	}

	if target == wgtools.ShowTargetInterfaces {
		names, err := tool.ShowInterfaces()
		if err != nil {
			fail("Error", err)
		}
		if format != config.FormatText {
			if err := printStructured(os.Stdout, names, format); err != nil {
				fail("Error", err)
			}
			return
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	ifaces, err := readInterfaces(tool, target)
	if err != nil {
		fail("Error", err)
	}
	if err := printInterfaces(os.Stdout, ifaces, format); err != nil {
		fail("Error", err)
	}
}

func readInterfaces(tool *wgtools.Tool, target string) ([]wgtools.Interface, error) {
	if showNative {
		if target == wgtools.ShowTargetAll {
			return wgtools.ReadDevices()
		}
		iface, err := wgtools.ReadDevice(target)
		if err != nil {
			return nil, err
		}
		return []wgtools.Interface{*iface}, nil
	}

	if target == wgtools.ShowTargetAll {
		return tool.ShowAll()
	}
	iface, err := tool.Show(target)
	if err != nil {
		return nil, err
	}
	return []wgtools.Interface{*iface}, nil
}

func runSet(cmd *cobra.Command, args []string) {
	setCfg, err := buildSetConfig()
	if err != nil {
		fail("Error", err)
	}

	if err := wgtools.Set(args[0], setCfg); err != nil {
		fail("Error", err)
	}
	fmt.Printf("✓ %s updated\n", args[0])
}

func buildSetConfig() (wgtools.SetConfig, error) {
	setCfg := wgtools.SetConfig{
		ListenPort:     setListenPort,
		Fwmark:         setFwmark,
		PrivateKeyFile: setPrivateKey,
	}

	peerFlagsUsed := setRemove || setPresharedKey != "" || setEndpoint != "" || setKeepalive != 0 || len(setAllowedIPs) > 0
	if setPeer == "" {
		if peerFlagsUsed {
			return setCfg, fmt.Errorf("peer settings require --peer")
		}
		return setCfg, nil
	}

	peer := wgtools.PeerConfig{
		PublicKey:           setPeer,
		Remove:              setRemove,
		PresharedKeyFile:    setPresharedKey,
		Endpoint:            setEndpoint,
		PersistentKeepalive: setKeepalive,
	}
	for _, ip := range setAllowedIPs {
		prefix, err := netip.ParsePrefix(ip)
		if err != nil {
			return setCfg, fmt.Errorf("invalid allowed ip %q: %w", ip, err)
		}
		peer.AllowedIPs = append(peer.AllowedIPs, prefix)
	}
	setCfg.Peers = []wgtools.PeerConfig{peer}

	return setCfg, nil
}

func runClearPeers(cmd *cobra.Command, args []string) {
	target := args[0]

	if !clearYes {
		ok, err := ui.ConfirmWithDefault(
			fmt.Sprintf("Remove every peer from %s?", target),
			false,
			ui.WithDescription(clearDescription(target)),
		)
		if err != nil {
			fail("Error", err)
		}
		if !ok {
			fmt.Println("Cancelled.")
			return
		}
	}

	if err := wgtools.ClearPeers(target); err != nil {
		fail("Error", err)
	}
	fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✓ Peers cleared from %s", target)))
}

// clearDescription summarizes what clear-peers is about to remove.
func clearDescription(target string) string {
	if target == wgtools.ShowTargetAll {
		names, err := wgtools.ShowInterfaces()
		if err != nil {
			return "This cannot be undone."
		}
		return fmt.Sprintf("%d interface(s) affected. This cannot be undone.", len(names))
	}

	iface, err := wgtools.Show(target)
	if err != nil {
		return "This cannot be undone."
	}
	return fmt.Sprintf("%d peer(s) will be removed. This cannot be undone.", len(iface.Peers))
}
