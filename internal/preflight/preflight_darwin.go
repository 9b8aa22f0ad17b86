//go:build darwin
// +build darwin

package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/kamikazebr/wgtools/internal/ui"
)

// canAutoInstall checks if we can auto-install wireguard-tools on macOS
// Only if brew is available
func canAutoInstall() bool {
	return isBrewAvailable()
}

// getInstallMethod returns the available installation method
func getInstallMethod() string {
	if isBrewAvailable() {
		return "brew"
	}
	return "manual"
}

// isBrewAvailable checks if Homebrew is installed
func isBrewAvailable() bool {
	brewPaths := []string{
		"/opt/homebrew/bin/brew", // Apple Silicon
		"/usr/local/bin/brew",    // Intel
	}

	for _, path := range brewPaths {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}

	_, err := exec.LookPath("brew")
	return err == nil
}

// getBrewPath returns the path to brew binary
func getBrewPath() string {
	if runtime.GOARCH == "arm64" {
		return "/opt/homebrew/bin/brew"
	}
	return "/usr/local/bin/brew"
}

// installWithBrew installs wireguard-tools using Homebrew
func installWithBrew() error {
	brewPath := getBrewPath()

	if _, err := os.Stat(brewPath); err != nil {
		path, err := exec.LookPath("brew")
		if err != nil {
			return fmt.Errorf("brew not found")
		}
		brewPath = path
	}

	fmt.Println("📦 Installing wireguard-tools via Homebrew...")
	fmt.Println()

	cmd := exec.Command(brewPath, "install", "wireguard-tools")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to install wireguard-tools: %w", err)
	}

	fmt.Println("\n✓ wireguard-tools installed successfully!")
	return nil
}

// promptInstallPlatform handles macOS-specific installation
func promptInstallPlatform(result *PreflightResult) (bool, error) {
	if !isBrewAvailable() {
		fmt.Println(getInstallInstructions())
		return false, nil
	}

	ok, err := ui.ConfirmWithDefault("Install wireguard-tools now?", true,
		ui.WithDescription("Command: brew install wireguard-tools"))
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Println("Installation cancelled.")
		return false, nil
	}

	if err := installWithBrew(); err != nil {
		return false, fmt.Errorf("%w\n\nTo install manually:\n  brew install wireguard-tools", err)
	}

	if !CheckInstalled(nil) {
		return false, fmt.Errorf("installation completed but 'wg' command not found.\nTry opening a new terminal and running the command again")
	}

	return true, nil
}

// getInstallInstructions returns macOS-specific installation instructions
func getInstallInstructions() string {
	if isBrewAvailable() {
		return `wireguard-tools is not installed.

To install via Homebrew:
  brew install wireguard-tools`
	}

	return `wireguard-tools is not installed.

Please install Homebrew and wireguard-tools first:
  /bin/bash -c "$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)"
  brew install wireguard-tools`
}
