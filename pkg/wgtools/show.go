package wgtools

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// Reserved `wg show` targets that do not name an interface.
const (
	ShowTargetAll        = "all"
	ShowTargetInterfaces = "interfaces"
)

const hiddenValue = "(hidden)"

// Interface is the parsed form of one `wg show` interface section.
type Interface struct {
	Name             string            `json:"name" yaml:"name"`
	PublicKey        string            `json:"public_key,omitempty" yaml:"public_key,omitempty"`
	PrivateKey       string            `json:"private_key,omitempty" yaml:"private_key,omitempty"`
	PrivateKeyHidden bool              `json:"private_key_hidden,omitempty" yaml:"private_key_hidden,omitempty"`
	ListeningPort    int               `json:"listening_port,omitempty" yaml:"listening_port,omitempty"`
	Fwmark           string            `json:"fwmark,omitempty" yaml:"fwmark,omitempty"`
	Peers            []Peer            `json:"peers" yaml:"peers"`
	Extra            map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Peer is the parsed form of one peer block.
type Peer struct {
	PublicKey           string            `json:"public_key" yaml:"public_key"`
	PresharedKey        string            `json:"preshared_key,omitempty" yaml:"preshared_key,omitempty"`
	PresharedKeyHidden  bool              `json:"preshared_key_hidden,omitempty" yaml:"preshared_key_hidden,omitempty"`
	Endpoint            string            `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	AllowedIPs          []netip.Prefix    `json:"allowed_ips" yaml:"allowed_ips"`
	LatestHandshake     string            `json:"latest_handshake,omitempty" yaml:"latest_handshake,omitempty"`
	Transfer            *Transfer         `json:"transfer,omitempty" yaml:"transfer,omitempty"`
	PersistentKeepalive string            `json:"persistent_keepalive,omitempty" yaml:"persistent_keepalive,omitempty"`
	Extra               map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Transfer holds the human-readable byte counters of a peer.
type Transfer struct {
	Received string `json:"received" yaml:"received"`
	Sent     string `json:"sent" yaml:"sent"`
}

// ParseError reports a line of `wg show` output that could not be parsed.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("line %d: %q: expected \"key: value\"", e.Line, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Show returns the parsed status of a single interface.
func (t *Tool) Show(iface string) (*Interface, error) {
	if iface == ShowTargetAll || iface == ShowTargetInterfaces {
		return nil, fmt.Errorf("%w: %q", ErrReservedInterface, iface)
	}

	text, err := t.ShowRaw(iface)
	if err != nil {
		return nil, err
	}

	parsed, err := ParseInterface(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse status of %s: %w", iface, err)
	}
	if parsed.Name == "" {
		parsed.Name = iface
	}
	return parsed, nil
}

// ShowAll returns every interface known to wg, in the order wg prints them.
func (t *Tool) ShowAll() ([]Interface, error) {
	text, err := t.ShowRaw(ShowTargetAll)
	if err != nil {
		return nil, err
	}

	ifaces, err := ParseInterfaces(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse status: %w", err)
	}
	return ifaces, nil
}

// ShowInterfaces returns the names of all WireGuard interfaces.
func (t *Tool) ShowInterfaces() ([]string, error) {
	text, err := t.ShowRaw(ShowTargetInterfaces)
	if err != nil {
		return nil, err
	}
	return strings.Fields(text), nil
}

// ShowRaw returns the unparsed output of `wg show <target>`.
func (t *Tool) ShowRaw(target string) (string, error) {
	out, err := t.run(nil, "show", target)
	if err != nil {
		return "", fmt.Errorf("failed to show %s: %w", target, err)
	}
	return out, nil
}

// Show returns the status of iface using the default Tool.
func Show(iface string) (*Interface, error) {
	return Default().Show(iface)
}

// ShowAll returns the status of all interfaces using the default Tool.
func ShowAll() ([]Interface, error) {
	return Default().ShowAll()
}

// ShowInterfaces lists interface names using the default Tool.
func ShowInterfaces() ([]string, error) {
	return Default().ShowInterfaces()
}

// ParseInterface parses the output of `wg show <iface>`. A leading
// "interface:" line sets Name.
func ParseInterface(text string) (*Interface, error) {
	iface := &Interface{Peers: []Peer{}}
	var peer *Peer

	err := scanLines(text, func(key, value string) error {
		switch key {
		case "interface":
			iface.Name = value
			return nil
		case "peer":
			iface.Peers = append(iface.Peers, Peer{PublicKey: value, AllowedIPs: []netip.Prefix{}})
			peer = &iface.Peers[len(iface.Peers)-1]
			return nil
		}
		if peer != nil {
			return peer.set(key, value)
		}
		return iface.set(key, value)
	})
	if err != nil {
		return nil, err
	}
	return iface, nil
}

// ParseInterfaces parses the output of `wg show all`. Each "interface:" line
// opens a new section.
func ParseInterfaces(text string) ([]Interface, error) {
	ifaces := []Interface{}
	var peer *Peer

	current := func() *Interface {
		return &ifaces[len(ifaces)-1]
	}

	err := scanLines(text, func(key, value string) error {
		if key == "interface" {
			ifaces = append(ifaces, Interface{Name: value, Peers: []Peer{}})
			peer = nil
			return nil
		}
		if len(ifaces) == 0 {
			return fmt.Errorf("%q appears before any interface", key)
		}
		if key == "peer" {
			iface := current()
			iface.Peers = append(iface.Peers, Peer{PublicKey: value, AllowedIPs: []netip.Prefix{}})
			peer = &iface.Peers[len(iface.Peers)-1]
			return nil
		}
		if peer != nil {
			return peer.set(key, value)
		}
		return current().set(key, value)
	})
	if err != nil {
		return nil, err
	}
	return ifaces, nil
}

// scanLines calls fn for every non-blank "key: value" line.
func scanLines(text string, fn func(key, value string) error) error {
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			return &ParseError{Line: i + 1, Text: line}
		}
		if err := fn(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return &ParseError{Line: i + 1, Text: line, Err: err}
		}
	}
	return nil
}

func (i *Interface) set(key, value string) error {
	switch key {
	case "public key":
		i.PublicKey = value
	case "private key":
		if value == hiddenValue {
			i.PrivateKeyHidden = true
			return nil
		}
		i.PrivateKey = value
	case "listening port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid listening port: %w", err)
		}
		i.ListeningPort = port
	case "fwmark":
		i.Fwmark = value
	default:
		if i.Extra == nil {
			i.Extra = map[string]string{}
		}
		i.Extra[key] = value
	}
	return nil
}

func (p *Peer) set(key, value string) error {
	switch key {
	case "preshared key":
		if value == hiddenValue {
			p.PresharedKeyHidden = true
			return nil
		}
		p.PresharedKey = value
	case "endpoint":
		p.Endpoint = value
	case "allowed ips":
		prefixes, err := parseAllowedIPs(value)
		if err != nil {
			return err
		}
		p.AllowedIPs = prefixes
	case "latest handshake":
		p.LatestHandshake = value
	case "transfer":
		transfer, err := parseTransfer(value)
		if err != nil {
			return err
		}
		p.Transfer = transfer
	case "persistent keepalive":
		p.PersistentKeepalive = value
	default:
		if p.Extra == nil {
			p.Extra = map[string]string{}
		}
		p.Extra[key] = value
	}
	return nil
}

func parseAllowedIPs(value string) ([]netip.Prefix, error) {
	prefixes := []netip.Prefix{}
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		if field == "" || field == "(none)" {
			continue
		}
		prefix, err := netip.ParsePrefix(field)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed ip %q: %w", field, err)
		}
		prefixes = append(prefixes, prefix)
	}
	return prefixes, nil
}

func parseTransfer(value string) (*Transfer, error) {
	received, sent, ok := strings.Cut(value, ",")
	if !ok {
		return nil, fmt.Errorf("invalid transfer %q", value)
	}
	return &Transfer{
		Received: strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(received), "received")),
		Sent:     strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sent), "sent")),
	}, nil
}
