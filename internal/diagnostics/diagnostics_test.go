package diagnostics

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/kamikazebr/wgtools/internal/config"
	"github.com/kamikazebr/wgtools/pkg/wgtools"
	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"
)

// TestHelperProcess stands in for wg when re-executed by fakeTool.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}

	switch args[0] {
	case "genkey":
		k, _ := wgtypes.GeneratePrivateKey()
		fmt.Println(k)
	case "genpsk":
		k, _ := wgtypes.GenerateKey()
		fmt.Println(k)
	case "pubkey":
		in, _ := io.ReadAll(os.Stdin)
		k, err := wgtypes.ParseKey(strings.TrimSpace(string(in)))
		if err != nil {
			os.Exit(1)
		}
		fmt.Println(k.PublicKey())
	case "show":
		if os.Getenv("FAKE_WG_DENY") == "1" {
			fmt.Fprintln(os.Stderr, "Unable to access interface: Operation not permitted")
			os.Exit(1)
		}
		fmt.Println("wg0")
	case "--version":
		fmt.Println("wireguard-tools v1.0.20250521 - https://git.zx2c4.com/wireguard-tools/")
	}
	os.Exit(0)
}

func fakeTool(env ...string) *wgtools.Tool {
	return &wgtools.Tool{
		Command: []string{os.Args[0], "-test.run=TestHelperProcess", "--"},
		Env:     append([]string{"GO_WANT_HELPER_PROCESS=1"}, env...),
	}
}

func findCheck(t *testing.T, report Report, name string) CheckResult {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not in report", name)
	return CheckResult{}
}

func TestRunHealthy(t *testing.T) {
	report := Run(&Env{
		Config: config.DefaultConfig(),
		Tool:   fakeTool(),
		ReadDevices: func() ([]wgtools.Interface, error) {
			return []wgtools.Interface{{Name: "wg0"}}, nil
		},
	})

	if report.Summary.Errors != 0 || report.Summary.Warnings != 0 {
		for _, c := range report.Checks {
			t.Logf("%s %s/%s: %s", c.Status.Symbol(), c.Category, c.Name, c.Message)
		}
		t.Fatalf("Summary = %+v, want no errors or warnings", report.Summary)
	}

	if got := findCheck(t, report, "Interface access").Message; got != "Interfaces: wg0" {
		t.Errorf("Interface access message = %q", got)
	}
	if got := findCheck(t, report, "Public key derivation").Category; got != "Keys" {
		t.Errorf("Category = %q, want Keys", got)
	}

	total := report.Summary.Passed + report.Summary.Warnings + report.Summary.Errors + report.Summary.Info
	if total != len(report.Checks) {
		t.Errorf("summary counts %d checks, report has %d", total, len(report.Checks))
	}
}

func TestRunMissingWG(t *testing.T) {
	report := Run(&Env{
		Config: config.DefaultConfig(),
		Tool:   wgtools.New("wg-definitely-not-installed"),
	})

	for _, name := range []string{"wg installed", "Private key generation", "Public key derivation", "Preshared key generation"} {
		c := findCheck(t, report, name)
		if c.Status != CheckError {
			t.Errorf("%s status = %s, want ERROR", name, c.Status)
		}
		if len(c.Fixes) == 0 {
			t.Errorf("%s has no fixes", name)
		}
	}

	if c := findCheck(t, report, "Native control"); c.Status != CheckInfo {
		t.Errorf("Native control status = %s, want INFO when skipped", c.Status)
	}
}

func TestRunPermissionDenied(t *testing.T) {
	report := Run(&Env{
		Config: config.DefaultConfig(),
		Tool:   fakeTool("FAKE_WG_DENY=1"),
		ReadDevices: func() ([]wgtools.Interface, error) {
			return nil, errors.New("operation not permitted")
		},
	})

	c := findCheck(t, report, "Interface access")
	if c.Status != CheckWarning {
		t.Errorf("Interface access status = %s, want WARNING", c.Status)
	}
	if len(c.Fixes) == 0 {
		t.Error("expected sudo fix for permission failure")
	}

	if c := findCheck(t, report, "Native control"); c.Status != CheckWarning {
		t.Errorf("Native control status = %s, want WARNING", c.Status)
	}
}

func TestRunConfigError(t *testing.T) {
	report := Run(&Env{
		ConfigErr: errors.New("bad format"),
		Tool:      fakeTool(),
	})

	if c := findCheck(t, report, "Config loaded"); c.Status != CheckError {
		t.Errorf("Config loaded status = %s, want ERROR", c.Status)
	}
}

func TestCheckStatusText(t *testing.T) {
	text, err := CheckWarning.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "WARNING" {
		t.Errorf("MarshalText() = %q, want WARNING", text)
	}
	if CheckStatus(42).String() != "UNKNOWN" {
		t.Error("unexpected String() for unknown status")
	}
}
