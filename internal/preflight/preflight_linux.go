//go:build linux
// +build linux

package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kamikazebr/wgtools/internal/ui"
)

// packageManagers lists supported managers in preference order with the
// command that installs wireguard-tools.
var packageManagers = []struct {
	name string
	argv []string
}{
	{"apt", []string{"sudo", "apt", "install", "-y", "wireguard-tools"}},
	{"dnf", []string{"sudo", "dnf", "install", "-y", "wireguard-tools"}},
	{"pacman", []string{"sudo", "pacman", "-S", "--noconfirm", "wireguard-tools"}},
	{"apk", []string{"sudo", "apk", "add", "wireguard-tools"}},
}

// canAutoInstall checks if we can auto-install wireguard-tools on Linux
func canAutoInstall() bool {
	return getInstallMethod() != "manual"
}

// getInstallMethod returns the available installation method
func getInstallMethod() string {
	for _, pm := range packageManagers {
		if _, err := exec.LookPath(pm.name); err == nil {
			return pm.name
		}
	}
	return "manual"
}

func installArgv(method string) []string {
	for _, pm := range packageManagers {
		if pm.name == method {
			return pm.argv
		}
	}
	return nil
}

// installWithPackageManager installs wireguard-tools using the system package manager
func installWithPackageManager(method string) error {
	argv := installArgv(method)
	if argv == nil {
		return fmt.Errorf("unknown package manager: %s", method)
	}

	if method == "apt" {
		fmt.Println("Running: sudo apt update")
		updateCmd := exec.Command("sudo", "apt", "update")
		updateCmd.Stdout = os.Stdout
		updateCmd.Stderr = os.Stderr
		if err := updateCmd.Run(); err != nil {
			return fmt.Errorf("failed to update apt: %w", err)
		}
	}

	fmt.Printf("Installing wireguard-tools via %s...\n\n", method)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to install wireguard-tools: %w", err)
	}

	fmt.Println("\n✓ wireguard-tools installed successfully!")
	return nil
}

// promptInstallPlatform handles Linux-specific installation prompts
func promptInstallPlatform(result *PreflightResult) (bool, error) {
	if !result.CanAutoInstall {
		fmt.Println(getInstallInstructions())
		return false, nil
	}

	installCmd := strings.Join(installArgv(result.InstallMethod), " ")
	ok, err := ui.ConfirmWithDefault("Install wireguard-tools now?", true,
		ui.WithDescription("Command: "+installCmd))
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Println("Installation cancelled.")
		return false, nil
	}

	if err := installWithPackageManager(result.InstallMethod); err != nil {
		return false, err
	}
	return true, nil
}

// getInstallInstructions returns Linux-specific installation instructions
func getInstallInstructions() string {
	switch getInstallMethod() {
	case "apt":
		return `wireguard-tools is not installed.

To install on Debian/Ubuntu:
  sudo apt update && sudo apt install wireguard-tools`

	case "dnf":
		return `wireguard-tools is not installed.

To install on Fedora/RHEL:
  sudo dnf install wireguard-tools`

	case "pacman":
		return `wireguard-tools is not installed.

To install on Arch Linux:
  sudo pacman -S wireguard-tools`

	case "apk":
		return `wireguard-tools is not installed.

To install on Alpine:
  sudo apk add wireguard-tools`

	default:
		return `wireguard-tools is not installed.

To install on Linux:
  Debian/Ubuntu: sudo apt install wireguard-tools
  Fedora/RHEL:   sudo dnf install wireguard-tools
  Arch Linux:    sudo pacman -S wireguard-tools
  Alpine:        sudo apk add wireguard-tools`
	}
}
