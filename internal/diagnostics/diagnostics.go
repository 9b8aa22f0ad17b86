package diagnostics

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/kamikazebr/wgtools/internal/config"
	"github.com/kamikazebr/wgtools/internal/preflight"
	"github.com/kamikazebr/wgtools/pkg/version"
	"github.com/kamikazebr/wgtools/pkg/wgtools"
	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"
)

// CheckStatus represents the result status of a health check
type CheckStatus int

const (
	CheckPassed CheckStatus = iota
	CheckWarning
	CheckError
	CheckInfo
)

// String returns the human-readable status
func (s CheckStatus) String() string {
	switch s {
	case CheckPassed:
		return "PASSED"
	case CheckWarning:
		return "WARNING"
	case CheckError:
		return "ERROR"
	case CheckInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// Symbol returns the display symbol for the status
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPassed:
		return "✓"
	case CheckWarning:
		return "⚠️"
	case CheckError:
		return "✗"
	case CheckInfo:
		return "ℹ️"
	default:
		return "?"
	}
}

// MarshalText encodes the status by name in JSON and YAML reports.
func (s CheckStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name     string      `json:"name" yaml:"name"`
	Category string      `json:"category" yaml:"category"`
	Status   CheckStatus `json:"status" yaml:"status"`
	Message  string      `json:"message" yaml:"message"`
	Fixes    []string    `json:"fixes,omitempty" yaml:"fixes,omitempty"`
}

// Report represents the complete diagnostics report
type Report struct {
	Checks   []CheckResult `json:"checks" yaml:"checks"`
	Summary  Summary       `json:"summary" yaml:"summary"`
	Version  string        `json:"version" yaml:"version"`
	OS       string        `json:"os" yaml:"os"`
	Platform string        `json:"platform" yaml:"platform"`
	RanAt    time.Time     `json:"ran_at" yaml:"ran_at"`
}

// Summary provides counts of check results
type Summary struct {
	Passed   int `json:"passed" yaml:"passed"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Errors   int `json:"errors" yaml:"errors"`
	Info     int `json:"info" yaml:"info"`
}

// Env is what the checks run against.
type Env struct {
	Config    *config.Config
	ConfigErr error
	Tool      *wgtools.Tool
	// ReadDevices lists kernel devices; nil skips the check.
	ReadDevices func() ([]wgtools.Interface, error)
}

// CheckCategory represents a group of related checks
type CheckCategory struct {
	Name   string
	Checks []func(*Env) CheckResult
}

// checkConfigLoaded validates that configuration could be read
func checkConfigLoaded(env *Env) CheckResult {
	if env.ConfigErr != nil {
		return CheckResult{
			Name:    "Config loaded",
			Status:  CheckError,
			Message: fmt.Sprintf("Config invalid: %v", env.ConfigErr),
			Fixes:   []string{"Run: wgtools config --reset"},
		}
	}

	return CheckResult{
		Name:    "Config loaded",
		Status:  CheckPassed,
		Message: fmt.Sprintf("Config loaded (format: %s)", env.Config.OutputFormat),
	}
}

// checkWGInstalled validates the wg binary is reachable
func checkWGInstalled(env *Env) CheckResult {
	result := preflight.RunPreflight(env.Tool.Command)
	if !result.Installed {
		return CheckResult{
			Name:    "wg installed",
			Status:  CheckError,
			Message: fmt.Sprintf("%s not found", preflight.Binary(env.Tool.Command)),
			Fixes:   []string{"Run: wgtools doctor --install"},
		}
	}

	msg := fmt.Sprintf("Found %s", result.Binary)
	if result.Version != "" {
		msg = fmt.Sprintf("%s (%s)", msg, firstField(result.Version, 2))
	}
	return CheckResult{
		Name:    "wg installed",
		Status:  CheckPassed,
		Message: msg,
	}
}

// checkGenKey validates `wg genkey` produces a parseable key
func checkGenKey(env *Env) CheckResult {
	key, err := env.Tool.GenKey()
	if err == nil {
		_, err = wgtypes.ParseKey(key)
	}
	if err != nil {
		return failed(env, "Private key generation", err)
	}

	return CheckResult{
		Name:    "Private key generation",
		Status:  CheckPassed,
		Message: "wg genkey works",
	}
}

// checkKeypair validates that `wg pubkey` derives the matching public key
func checkKeypair(env *Env) CheckResult {
	kp, err := env.Tool.GenerateKeypair()
	if err == nil {
		err = kp.Verify()
	}
	if err != nil {
		return failed(env, "Public key derivation", err)
	}

	return CheckResult{
		Name:    "Public key derivation",
		Status:  CheckPassed,
		Message: "wg pubkey output matches private key",
	}
}

// checkGenPSK validates `wg genpsk`
func checkGenPSK(env *Env) CheckResult {
	psk, err := env.Tool.GenPSK()
	if err == nil {
		_, err = wgtypes.ParseKey(psk)
	}
	if err != nil {
		return failed(env, "Preshared key generation", err)
	}

	return CheckResult{
		Name:    "Preshared key generation",
		Status:  CheckPassed,
		Message: "wg genpsk works",
	}
}

// checkShowInterfaces validates `wg show interfaces`, which usually needs root
func checkShowInterfaces(env *Env) CheckResult {
	names, err := env.Tool.ShowInterfaces()
	if err != nil {
		result := CheckResult{
			Name:    "Interface access",
			Status:  CheckWarning,
			Message: fmt.Sprintf("Cannot list interfaces: %v", err),
		}
		var cmdErr *wgtools.CommandError
		if errors.As(err, &cmdErr) {
			result.Fixes = []string{"Run with sudo, or: wgtools config --set-sudo=true"}
		}
		return result
	}

	if len(names) == 0 {
		return CheckResult{
			Name:    "Interface access",
			Status:  CheckInfo,
			Message: "No WireGuard interfaces configured",
		}
	}

	return CheckResult{
		Name:    "Interface access",
		Status:  CheckPassed,
		Message: fmt.Sprintf("Interfaces: %s", strings.Join(names, ", ")),
	}
}

// checkNativeControl validates that interfaces can be read without wg
func checkNativeControl(env *Env) CheckResult {
	if env.ReadDevices == nil {
		return CheckResult{
			Name:    "Native control",
			Status:  CheckInfo,
			Message: "Skipped",
		}
	}

	devices, err := env.ReadDevices()
	if err != nil {
		return CheckResult{
			Name:    "Native control",
			Status:  CheckWarning,
			Message: fmt.Sprintf("wgctrl unavailable: %v", err),
		}
	}

	return CheckResult{
		Name:    "Native control",
		Status:  CheckPassed,
		Message: fmt.Sprintf("wgctrl sees %d device(s)", len(devices)),
	}
}

func failed(env *Env, name string, err error) CheckResult {
	result := CheckResult{
		Name:    name,
		Status:  CheckError,
		Message: err.Error(),
	}
	if preflight.IsMissing(err, env.Tool.Command) {
		result.Fixes = []string{"Run: wgtools doctor --install"}
	}
	return result
}

// firstField returns the first n space-separated fields of s.
func firstField(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

// GetChecks returns all diagnostic checks organized by category
func GetChecks() []CheckCategory {
	return []CheckCategory{
		{
			Name: "Configuration",
			Checks: []func(*Env) CheckResult{
				checkConfigLoaded,
			},
		},
		{
			Name: "Tools",
			Checks: []func(*Env) CheckResult{
				checkWGInstalled,
			},
		},
		{
			Name: "Keys",
			Checks: []func(*Env) CheckResult{
				checkGenKey,
				checkKeypair,
				checkGenPSK,
			},
		},
		{
			Name: "Interfaces",
			Checks: []func(*Env) CheckResult{
				checkShowInterfaces,
				checkNativeControl,
			},
		},
	}
}

// Run runs all diagnostic checks and returns structured results
func Run(env *Env) Report {
	if env.Config == nil {
		env.Config = config.DefaultConfig()
	}
	if env.Tool == nil {
		env.Tool = wgtools.Default()
	}

	var allChecks []CheckResult
	summary := Summary{}

	for _, category := range GetChecks() {
		for _, checkFunc := range category.Checks {
			result := checkFunc(env)
			result.Category = category.Name
			allChecks = append(allChecks, result)

			switch result.Status {
			case CheckPassed:
				summary.Passed++
			case CheckWarning:
				summary.Warnings++
			case CheckError:
				summary.Errors++
			case CheckInfo:
				summary.Info++
			}
		}
	}

	return Report{
		Checks:   allChecks,
		Summary:  summary,
		Version:  version.Version,
		OS:       runtime.GOOS,
		Platform: runtime.GOARCH,
		RanAt:    time.Now().UTC(),
	}
}
