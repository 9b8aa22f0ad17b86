package wgtools

import (
	"errors"
	"os/exec"
	"reflect"
	"strings"
	"testing"

	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"
)

func TestGenKey(t *testing.T) {
	tool := fakeTool(t, t.TempDir())

	key, err := tool.GenKey()
	if err != nil {
		t.Fatalf("GenKey() failed: %v", err)
	}
	if strings.TrimSpace(key) != key {
		t.Errorf("GenKey() returned untrimmed output: %q", key)
	}
	if _, err := wgtypes.ParseKey(key); err != nil {
		t.Errorf("GenKey() returned invalid key %q: %v", key, err)
	}
}

func TestGenKeyUnique(t *testing.T) {
	tool := fakeTool(t, t.TempDir())

	first, err := tool.GenKey()
	if err != nil {
		t.Fatalf("GenKey() failed: %v", err)
	}
	second, err := tool.GenKey()
	if err != nil {
		t.Fatalf("GenKey() failed: %v", err)
	}
	if first == second {
		t.Error("GenKey() returned the same key twice")
	}
}

func TestPubKey(t *testing.T) {
	tool := fakeTool(t, t.TempDir())

	private, err := wgtypes.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() failed: %v", err)
	}

	public, err := tool.PubKey(private.String())
	if err != nil {
		t.Fatalf("PubKey() failed: %v", err)
	}
	if want := private.PublicKey().String(); public != want {
		t.Errorf("PubKey() = %q, want %q", public, want)
	}
}

func TestPubKeyInvalid(t *testing.T) {
	tool := fakeTool(t, t.TempDir())

	_, err := tool.PubKey("not-a-key")
	if err == nil {
		t.Fatal("PubKey() succeeded on malformed key")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("PubKey() error is %T, want *CommandError", err)
	}
	if cmdErr.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", cmdErr.ExitCode)
	}
	if !strings.Contains(cmdErr.Stderr, "not the correct length or format") {
		t.Errorf("Stderr = %q, want wg diagnostic", cmdErr.Stderr)
	}
	if !strings.Contains(err.Error(), cmdErr.Stderr) {
		t.Errorf("error %q does not carry diagnostic text", err)
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Error("CommandError does not unwrap to *exec.ExitError")
	}
}

func TestGenPSK(t *testing.T) {
	tool := fakeTool(t, t.TempDir())

	psk, err := tool.GenPSK()
	if err != nil {
		t.Fatalf("GenPSK() failed: %v", err)
	}
	if _, err := wgtypes.ParseKey(psk); err != nil {
		t.Errorf("GenPSK() returned invalid key %q: %v", psk, err)
	}
}

func TestGenerateKeypair(t *testing.T) {
	tool := fakeTool(t, t.TempDir())

	kp, err := tool.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() failed: %v", err)
	}
	if err := kp.Verify(); err != nil {
		t.Errorf("Verify() failed: %v", err)
	}
	if kp.Public == kp.Private {
		t.Error("public and private keys are identical")
	}
}

func TestProcessPerCall(t *testing.T) {
	private, err := wgtypes.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() failed: %v", err)
	}

	tests := []struct {
		name string
		call func(*Tool) error
		want []string
	}{
		{"genkey", func(tool *Tool) error { _, err := tool.GenKey(); return err }, []string{"genkey"}},
		{"pubkey", func(tool *Tool) error { _, err := tool.PubKey(private.String()); return err }, []string{"pubkey"}},
		{"genpsk", func(tool *Tool) error { _, err := tool.GenPSK(); return err }, []string{"genpsk"}},
		{"keypair", func(tool *Tool) error { _, err := tool.GenerateKeypair(); return err }, []string{"genkey", "pubkey"}},
		{"keypair from private", func(tool *Tool) error { _, err := tool.KeypairFromPrivate(private.String()); return err }, []string{"pubkey"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := tt.call(fakeTool(t, dir)); err != nil {
				t.Fatalf("call failed: %v", err)
			}
			if got := readCalls(t, dir); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wg invocations = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeypairFromPrivate(t *testing.T) {
	tool := fakeTool(t, t.TempDir())

	private, err := wgtypes.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() failed: %v", err)
	}

	kp, err := tool.KeypairFromPrivate(private.String())
	if err != nil {
		t.Fatalf("KeypairFromPrivate() failed: %v", err)
	}
	want := Keypair{Public: private.PublicKey().String(), Private: private.String()}
	if kp != want {
		t.Errorf("KeypairFromPrivate() = %+v, want %+v", kp, want)
	}
}

func TestEmptyOutput(t *testing.T) {
	tool := fakeTool(t, t.TempDir(), "FAKE_WG_EMPTY=1")

	tests := []struct {
		name string
		fn   func() (string, error)
	}{
		{"genkey", tool.GenKey},
		{"genpsk", tool.GenPSK},
		{"pubkey", func() (string, error) { return tool.PubKey("ignored") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			if !errors.Is(err, ErrEmptyOutput) {
				t.Errorf("error = %v, want ErrEmptyOutput", err)
			}
		})
	}
}

func TestKeypairValidate(t *testing.T) {
	private, err := wgtypes.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() failed: %v", err)
	}

	tests := []struct {
		name    string
		kp      Keypair
		wantErr bool
	}{
		{
			name: "valid",
			kp:   Keypair{Public: private.PublicKey().String(), Private: private.String()},
		},
		{
			name:    "bad public",
			kp:      Keypair{Public: "abc", Private: private.String()},
			wantErr: true,
		},
		{
			name:    "bad private",
			kp:      Keypair{Public: private.PublicKey().String(), Private: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.kp.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestKeypairVerifyMismatch(t *testing.T) {
	a, _ := wgtypes.GeneratePrivateKey()
	b, _ := wgtypes.GeneratePrivateKey()

	kp := Keypair{Public: b.PublicKey().String(), Private: a.String()}
	if err := kp.Verify(); !errors.Is(err, ErrKeypairMismatch) {
		t.Errorf("Verify() error = %v, want ErrKeypairMismatch", err)
	}
}

func TestKeypairStringHidesPrivate(t *testing.T) {
	kp := Keypair{Public: "pub", Private: "secret"}
	if strings.Contains(kp.String(), "secret") {
		t.Errorf("String() leaks private key: %q", kp.String())
	}
}

// TestRealWG exercises the installed wg binary when available.
func TestRealWG(t *testing.T) {
	if _, err := exec.LookPath(DefaultBinary); err != nil {
		t.Skip("wg not installed, skipping")
	}

	kp, err := New().GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() failed: %v", err)
	}
	if err := kp.Verify(); err != nil {
		t.Errorf("Verify() failed: %v", err)
	}
	t.Logf("Public key: %s", kp.Public)
}
