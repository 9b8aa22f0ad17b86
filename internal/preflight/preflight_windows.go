//go:build windows
// +build windows

package preflight

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/kamikazebr/wgtools/internal/ui"
)

// canAutoInstall checks if we can auto-install WireGuard on Windows
func canAutoInstall() bool {
	return isWingetAvailable()
}

// getInstallMethod returns the available installation method
func getInstallMethod() string {
	if isWingetAvailable() {
		return "winget"
	}
	return "manual"
}

// isWingetAvailable checks if winget is installed
func isWingetAvailable() bool {
	_, err := exec.LookPath("winget")
	return err == nil
}

// installWithWinget installs WireGuard (which ships wg.exe) using winget
func installWithWinget() error {
	fmt.Println("Installing WireGuard via winget...")
	fmt.Println("Running: winget install WireGuard.WireGuard")
	fmt.Println()

	cmd := exec.Command("winget", "install", "WireGuard.WireGuard", "--accept-source-agreements", "--accept-package-agreements")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to install WireGuard: %w", err)
	}

	fmt.Println("\n✓ WireGuard installed successfully!")
	fmt.Println("\nNote: You may need to restart your terminal for wg.exe to be available in PATH.")
	return nil
}

// promptInstallPlatform handles Windows-specific installation prompts
func promptInstallPlatform(result *PreflightResult) (bool, error) {
	if !result.CanAutoInstall {
		fmt.Println(getInstallInstructions())
		return false, nil
	}

	ok, err := ui.ConfirmWithDefault("Install WireGuard via winget?", true,
		ui.WithDescription("Command: winget install WireGuard.WireGuard"))
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Println("Installation cancelled.")
		fmt.Println("Download the installer from: https://www.wireguard.com/install/")
		return false, nil
	}

	if err := installWithWinget(); err != nil {
		return false, err
	}
	return true, nil
}

// getInstallInstructions returns Windows-specific installation instructions
func getInstallInstructions() string {
	if isWingetAvailable() {
		return `WireGuard is not installed.

To install via winget:
  winget install WireGuard.WireGuard

Or download from:
  https://www.wireguard.com/install/`
	}

	return `WireGuard is not installed.

To install on Windows:
  1. Using winget: winget install WireGuard.WireGuard
  2. Or download from: https://www.wireguard.com/install/`
}
