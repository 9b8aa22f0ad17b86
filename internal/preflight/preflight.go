// Package preflight checks that wireguard-tools is available and offers to
// install it through the platform package manager.
package preflight

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kamikazebr/wgtools/pkg/wgtools"
)

// PreflightResult contains the result of the preflight check
type PreflightResult struct {
	Installed      bool
	Binary         string // resolved path of the wg binary, if found
	Version        string // `wg --version` output, if it ran
	CanAutoInstall bool
	InstallMethod  string // "brew", "winget", "apt", "dnf", etc.
}

// Binary returns the wg binary named by command, skipping a leading sudo and
// its flags. An empty command means the default wg binary.
func Binary(command []string) string {
	args := command
	if len(args) > 0 && filepath.Base(args[0]) == "sudo" {
		args = args[1:]
		for len(args) > 0 && strings.HasPrefix(args[0], "-") {
			args = args[1:]
		}
	}
	if len(args) == 0 {
		return wgtools.DefaultBinary
	}
	return args[0]
}

// CheckInstalled reports whether the wg binary named by command can be found.
func CheckInstalled(command []string) bool {
	_, err := exec.LookPath(Binary(command))
	return err == nil
}

// IsMissing reports whether err means the wg binary named by command is
// absent. A prefix such as sudo runs but fails with *wgtools.CommandError when
// wg is missing, so that case is resolved with a PATH lookup.
func IsMissing(err error, command []string) bool {
	if errors.Is(err, wgtools.ErrNotInstalled) {
		return true
	}
	var cmdErr *wgtools.CommandError
	return errors.As(err, &cmdErr) && !CheckInstalled(command)
}

// RunPreflight performs all pre-flight checks and returns the result
func RunPreflight(command []string) *PreflightResult {
	result := &PreflightResult{
		CanAutoInstall: canAutoInstall(),
		InstallMethod:  getInstallMethod(),
	}

	path, err := exec.LookPath(Binary(command))
	if err != nil {
		return result
	}
	result.Installed = true
	result.Binary = path

	// Version is informational; a failure here is reported by the caller's
	// first real invocation.
	if v, err := wgtools.New(path).Version(); err == nil {
		result.Version = v
	}

	return result
}

// PromptInstall prompts the user to install wireguard-tools and optionally
// installs it. Returns true if installation was successful or the tools were
// already present.
func PromptInstall(command []string) (bool, error) {
	result := RunPreflight(command)

	if result.Installed {
		return true, nil
	}

	fmt.Println("\n⚠️  wireguard-tools is not installed on your system.")
	fmt.Println()

	return promptInstallPlatform(result)
}

// GetInstallInstructions returns platform-specific installation instructions
func GetInstallInstructions() string {
	return getInstallInstructions()
}
