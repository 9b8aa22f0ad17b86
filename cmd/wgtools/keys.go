package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamikazebr/wgtools/internal/config"
	"github.com/kamikazebr/wgtools/pkg/utils"
	"github.com/kamikazebr/wgtools/pkg/wgtools"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

const (
	PrivateKeyFile = "private.key"
	PublicKeyFile  = "public.key"
)

var (
	keyOut         string
	keyQR          bool
	keypairOutDir  string
	keypairPrivate string
	keypairVerify  bool
	keypairForce   bool
)

func initKeyFlags() {
	genkeyCmd.Flags().StringVar(&keyOut, "out", "", "Write the key to this file (mode 0600) instead of stdout")
	genpskCmd.Flags().StringVar(&keyOut, "out", "", "Write the key to this file (mode 0600) instead of stdout")
	pubkeyCmd.Flags().BoolVar(&keyQR, "qr", false, "Also print the public key as a QR code")

	keypairCmd.Flags().StringVar(&keypairOutDir, "out-dir", "", "Write private.key and public.key into this directory")
	keypairCmd.Flags().StringVar(&keypairPrivate, "private", "", "Derive from the private key in this file instead of generating one")
	keypairCmd.Flags().BoolVar(&keypairVerify, "verify", false, "Check that the public key matches the private key")
	keypairCmd.Flags().BoolVar(&keypairForce, "force", false, "Overwrite existing key files")
	keypairCmd.Flags().BoolVar(&keyQR, "qr", false, "Also print the public key as a QR code")
}

func runGenKey(cmd *cobra.Command, args []string) {
	key, err := wgtools.GenKey()
	if err != nil {
		fail("Error", err)
	}
	emitSecret(key)
}

func runGenPSK(cmd *cobra.Command, args []string) {
	key, err := wgtools.GenPSK()
	if err != nil {
		fail("Error", err)
	}
	emitSecret(key)
}

// emitSecret prints key or writes it to --out.
func emitSecret(key string) {
	if keyOut == "" {
		fmt.Println(key)
		return
	}
	if err := writeKeyFile(keyOut, key, true); err != nil {
		fail("Error", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Key written to %s\n", keyOut)
}

func runPubKey(cmd *cobra.Command, args []string) {
	var private string
	if len(args) > 0 {
		private = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			fail("Error reading private key", err)
		}
		private = string(data)
	}

	public, err := wgtools.PubKey(strings.TrimSpace(private))
	if err != nil {
		fail("Error", err)
	}

	fmt.Println(public)
	if keyQR {
		displayQRCode(public)
	}
}

func runKeypair(cmd *cobra.Command, args []string) {
	var (
		kp  wgtools.Keypair
		err error
	)
	if keypairPrivate != "" {
		data, rerr := os.ReadFile(keypairPrivate)
		if rerr != nil {
			fail("Error reading private key", rerr)
		}
		kp, err = wgtools.KeypairFromPrivate(strings.TrimSpace(string(data)))
	} else {
		kp, err = wgtools.GenerateKeypair()
	}
	if err != nil {
		fail("Error", err)
	}

	if keypairVerify {
		if err := kp.Verify(); err != nil {
			fail("Verification failed", err)
		}
	}

	if keypairOutDir != "" {
		if err := writeKeypair(keypairOutDir, kp, keypairForce); err != nil {
			fail("Error", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Keys written to %s\n", keypairOutDir)
	}

	if keypairOutDir == "" || format != config.FormatText {
		if err := printKeypair(os.Stdout, kp, format, keypairOutDir == ""); err != nil {
			fail("Error", err)
		}
	} else {
		fmt.Println(kp.Public)
	}

	if keyQR {
		displayQRCode(kp.Public)
	}
}

// writeKeypair stores both halves in dir. The private key is only readable by
// its owner.
func writeKeypair(dir string, kp wgtools.Keypair, force bool) error {
	privatePath := filepath.Join(dir, PrivateKeyFile)
	publicPath := filepath.Join(dir, PublicKeyFile)

	// Refuse before writing anything: a new private key must never sit next to
	// an old public key.
	if !force {
		for _, path := range []string{privatePath, publicPath} {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
	}

	if err := utils.MkdirAllWithOwnership(dir, 0700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := writeKeyFile(privatePath, kp.Private, true); err != nil {
		return err
	}
	if err := writeKeyFile(publicPath, kp.Public, true); err != nil {
		os.Remove(privatePath)
		return err
	}
	return nil
}

func writeKeyFile(path, key string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := utils.WriteFileWithOwnership(path, []byte(key+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func displayQRCode(data string) {
	qr, err := qrcode.New(data, qrcode.Medium)
	if err != nil {
		fmt.Println("Failed to generate QR code:", err)
		return
	}

	// false = inverted colors for better visibility in terminal
	fmt.Println(qr.ToSmallString(false))
}
