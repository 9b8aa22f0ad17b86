//go:build !linux && !darwin && !windows

package preflight

import "fmt"

func canAutoInstall() bool {
	return false
}

func getInstallMethod() string {
	return "manual"
}

func promptInstallPlatform(result *PreflightResult) (bool, error) {
	fmt.Println(getInstallInstructions())
	return false, nil
}

func getInstallInstructions() string {
	return `wireguard-tools is not installed.

Install it from your system's package collection, or see:
  https://www.wireguard.com/install/`
}
