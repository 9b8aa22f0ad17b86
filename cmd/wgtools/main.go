package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kamikazebr/wgtools/internal/config"
	"github.com/kamikazebr/wgtools/internal/logger"
	"github.com/kamikazebr/wgtools/internal/preflight"
	"github.com/kamikazebr/wgtools/pkg/version"
	"github.com/kamikazebr/wgtools/pkg/wgtools"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	logFile    string
	wgOverride string
	format     string

	cfg    *config.Config
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:   "wgtools",
	Short: "WireGuard key and interface helper",
	Long: `wgtools wraps the wireguard-tools "wg" command.

Keys are generated by wg itself; wgtools only runs it and packages the output.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

var genkeyCmd = &cobra.Command{
	Use:   "genkey",
	Short: "Generate a private key",
	Args:  cobra.NoArgs,
	Run:   runGenKey,
}

var pubkeyCmd = &cobra.Command{
	Use:   "pubkey [private-key]",
	Short: "Derive the public key of a private key",
	Long: `Derive the public key of a private key.

The private key is read from standard input when not given as an argument:
  wgtools genkey | wgtools pubkey`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPubKey,
}

var genpskCmd = &cobra.Command{
	Use:   "genpsk",
	Short: "Generate a preshared key",
	Args:  cobra.NoArgs,
	Run:   runGenPSK,
}

var keypairCmd = &cobra.Command{
	Use:   "keypair",
	Short: "Generate a public / private key pair",
	Long: `Generate a private key and derive its public key.

Examples:
  wgtools keypair                       # print both keys
  wgtools keypair --format json         # machine readable
  wgtools keypair --out-dir ./peer1     # write private.key and public.key
  wgtools keypair --private ./wg0.key   # derive from an existing key file`,
	Args: cobra.NoArgs,
	Run:  runKeypair,
}

var showCmd = &cobra.Command{
	Use:   "show [interface|all|interfaces]",
	Short: "Show interface status",
	Args:  cobra.MaximumNArgs(1),
	Run:   runShow,
}

var setCmd = &cobra.Command{
	Use:   "set <interface>",
	Short: "Change interface or peer settings",
	Long: `Change interface or peer settings with "wg set".

Examples:
  wgtools set wg0 --listen-port 51820 --private-key /etc/wireguard/wg0.key
  wgtools set wg0 --peer <public-key> --endpoint 192.0.2.1:51820 --allowed-ips 10.0.0.2/32
  wgtools set wg0 --peer <public-key> --remove`,
	Args: cobra.ExactArgs(1),
	Run:  runSet,
}

var clearPeersCmd = &cobra.Command{
	Use:   "clear-peers <interface|all>",
	Short: "Remove every peer from an interface",
	Args:  cobra.ExactArgs(1),
	Run:   runClearPeers,
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that wireguard-tools works",
	Args:  cobra.NoArgs,
	Run:   runDoctor,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change saved settings",
	Args:  cobra.NoArgs,
	Run:   runConfig,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run:   runVersion,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log wg invocations")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file")
	rootCmd.PersistentFlags().StringVar(&wgOverride, "wg", "", "Command used to run wg (e.g. \"sudo wg\")")

	for _, cmd := range []*cobra.Command{keypairCmd, showCmd, doctorCmd, versionCmd} {
		cmd.Flags().StringVarP(&format, "format", "o", "", "Output format: text, json or yaml")
	}

	initKeyFlags()
	initInterfaceFlags()
	initDoctorFlags()
	initConfigFlags()

	rootCmd.AddCommand(genkeyCmd, pubkeyCmd, genpskCmd, keypairCmd, showCmd, setCmd, clearPeersCmd, doctorCmd, configCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// setup loads config and installs the logger and default wg tool before any
// command runs.
func setup(cmd *cobra.Command, args []string) error {
	l, err := logger.Init(logger.Options{Verbose: verbose, FilePath: logFile})
	if err != nil {
		return err
	}

	cfg, cfgErr = config.Load()
	if cfgErr != nil {
		// doctor and config report and repair a broken config themselves.
		if cmd != doctorCmd && cmd != configCmd {
			return cfgErr
		}
		cfg = config.DefaultConfig()
	}

	if format == "" {
		format = cfg.OutputFormat
	}
	if err := config.ValidateFormat(format); err != nil {
		return err
	}

	command := cfg.Command()
	if wgOverride != "" {
		command = strings.Fields(wgOverride)
	}

	tool := wgtools.New(command...)
	tool.Logger = l
	wgtools.SetDefault(tool)

	l.Debug("wg tool configured", "command", tool.Command, "format", format)
	return nil
}

func runVersion(cmd *cobra.Command, args []string) {
	info := version.Get()
	if v, err := wgtools.Default().Version(); err == nil {
		info.WireGuardTools = v
	}

	if format != config.FormatText {
		if err := printStructured(os.Stdout, info, format); err != nil {
			fail("Error", err)
		}
		return
	}

	fmt.Println(version.GetVersion("wgtools"))
	if verbose {
		fmt.Println(info)
	}
}

// fail prints err and exits. Missing wireguard-tools gets install hints,
// including when wg runs behind sudo.
func fail(context string, err error) {
	slog.Debug(context, "error", err)
	fmt.Fprintf(os.Stderr, "%s: %v\n", context, err)
	if preflight.IsMissing(err, wgtools.Default().Command) {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, preflight.GetInstallInstructions())
		fmt.Fprintln(os.Stderr, "\nOr run: wgtools doctor --install")
	}
	os.Exit(1)
}
