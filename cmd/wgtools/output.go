package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kamikazebr/wgtools/internal/config"
	"github.com/kamikazebr/wgtools/pkg/wgtools"
	"gopkg.in/yaml.v2"
)

// printStructured writes v as JSON or YAML.
func printStructured(w io.Writer, v any, format string) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unsupported structured format %q", format)
}

func printKeypair(w io.Writer, kp wgtools.Keypair, format string, includePrivate bool) error {
	if !includePrivate {
		kp.Private = ""
	}

	if format != config.FormatText {
		if !includePrivate {
			return printStructured(w, struct {
				Public string `json:"public" yaml:"public"`
			}{kp.Public}, format)
		}
		return printStructured(w, kp, format)
	}

	fmt.Fprintf(w, "public key:  %s\n", kp.Public)
	if includePrivate {
		fmt.Fprintf(w, "private key: %s\n", kp.Private)
	}
	return nil
}

func printInterfaces(w io.Writer, ifaces []wgtools.Interface, format string) error {
	if format != config.FormatText {
		return printStructured(w, ifaces, format)
	}

	for i := range ifaces {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeInterfaceText(w, &ifaces[i])
	}
	return nil
}

// writeInterfaceText renders an interface in the same layout as `wg show`.
func writeInterfaceText(w io.Writer, iface *wgtools.Interface) {
	fmt.Fprintf(w, "interface: %s\n", iface.Name)
	if iface.PublicKey != "" {
		fmt.Fprintf(w, "  public key: %s\n", iface.PublicKey)
	}
	switch {
	case iface.PrivateKey != "":
		fmt.Fprintf(w, "  private key: %s\n", iface.PrivateKey)
	case iface.PrivateKeyHidden:
		fmt.Fprintln(w, "  private key: (hidden)")
	}
	if iface.ListeningPort != 0 {
		fmt.Fprintf(w, "  listening port: %d\n", iface.ListeningPort)
	}
	if iface.Fwmark != "" {
		fmt.Fprintf(w, "  fwmark: %s\n", iface.Fwmark)
	}

	for _, peer := range iface.Peers {
		fmt.Fprintf(w, "\npeer: %s\n", peer.PublicKey)
		switch {
		case peer.PresharedKey != "":
			fmt.Fprintf(w, "  preshared key: %s\n", peer.PresharedKey)
		case peer.PresharedKeyHidden:
			fmt.Fprintln(w, "  preshared key: (hidden)")
		}
		if peer.Endpoint != "" {
			fmt.Fprintf(w, "  endpoint: %s\n", peer.Endpoint)
		}

		ips := make([]string, len(peer.AllowedIPs))
		for i, prefix := range peer.AllowedIPs {
			ips[i] = prefix.String()
		}
		if len(ips) == 0 {
			ips = []string{"(none)"}
		}
		fmt.Fprintf(w, "  allowed ips: %s\n", strings.Join(ips, ", "))

		if peer.LatestHandshake != "" {
			fmt.Fprintf(w, "  latest handshake: %s\n", peer.LatestHandshake)
		}
		if peer.Transfer != nil {
			fmt.Fprintf(w, "  transfer: %s received, %s sent\n", peer.Transfer.Received, peer.Transfer.Sent)
		}
		if peer.PersistentKeepalive != "" {
			fmt.Fprintf(w, "  persistent keepalive: %s\n", peer.PersistentKeepalive)
		}
	}
}
