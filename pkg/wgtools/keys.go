package wgtools

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/curve25519"
	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"
)

// ErrKeypairMismatch is returned by Keypair.Verify when the public key was not
// derived from the private key.
var ErrKeypairMismatch = errors.New("public key does not match private key")

// Keypair is a public / private key pair as printed by wg.
type Keypair struct {
	Public  string `json:"public" yaml:"public"`
	Private string `json:"private" yaml:"private"`
}

// GenKey generates a new private key with `wg genkey`.
func (t *Tool) GenKey() (string, error) {
	key, err := t.runKey(nil, "genkey")
	if err != nil {
		return "", fmt.Errorf("failed to generate private key: %w", err)
	}
	return key, nil
}

// PubKey derives the public key of private with `wg pubkey`.
func (t *Tool) PubKey(private string) (string, error) {
	key, err := t.runKey(strings.NewReader(private), "pubkey")
	if err != nil {
		return "", fmt.Errorf("failed to derive public key: %w", err)
	}
	return key, nil
}

// GenPSK generates a new pre-shared key with `wg genpsk`.
func (t *Tool) GenPSK() (string, error) {
	key, err := t.runKey(nil, "genpsk")
	if err != nil {
		return "", fmt.Errorf("failed to generate preshared key: %w", err)
	}
	return key, nil
}

// KeypairFromPrivate returns the keypair for an existing private key.
func (t *Tool) KeypairFromPrivate(private string) (Keypair, error) {
	public, err := t.PubKey(private)
	if err != nil {
		return Keypair{}, err
	}
	return Keypair{Public: public, Private: private}, nil
}

// GenerateKeypair generates a private key and derives its public key.
func (t *Tool) GenerateKeypair() (Keypair, error) {
	private, err := t.GenKey()
	if err != nil {
		return Keypair{}, err
	}
	return t.KeypairFromPrivate(private)
}

// GenKey generates a private key using the default Tool.
func GenKey() (string, error) {
	return Default().GenKey()
}

// PubKey derives a public key using the default Tool.
func PubKey(private string) (string, error) {
	return Default().PubKey(private)
}

// GenPSK generates a pre-shared key using the default Tool.
func GenPSK() (string, error) {
	return Default().GenPSK()
}

// KeypairFromPrivate builds a keypair using the default Tool.
func KeypairFromPrivate(private string) (Keypair, error) {
	return Default().KeypairFromPrivate(private)
}

// GenerateKeypair generates a keypair using the default Tool.
func GenerateKeypair() (Keypair, error) {
	return Default().GenerateKeypair()
}

// Validate checks that both halves are well-formed 32-byte base64 keys.
func (k Keypair) Validate() error {
	if _, err := wgtypes.ParseKey(k.Public); err != nil {
		return fmt.Errorf("invalid public key: %w", err)
	}
	if _, err := wgtypes.ParseKey(k.Private); err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}
	return nil
}

// Verify checks that Public is the X25519 base point multiple of Private.
func (k Keypair) Verify() error {
	if err := k.Validate(); err != nil {
		return err
	}

	private, _ := wgtypes.ParseKey(k.Private)
	public, _ := wgtypes.ParseKey(k.Public)

	derived, err := curve25519.X25519(private[:], curve25519.Basepoint)
	if err != nil {
		return fmt.Errorf("failed to derive public key: %w", err)
	}
	if subtle.ConstantTimeCompare(derived, public[:]) != 1 {
		return ErrKeypairMismatch
	}
	return nil
}

// String returns the public key only, so a Keypair can be logged.
func (k Keypair) String() string {
	return fmt.Sprintf("%s (private key hidden)", k.Public)
}
