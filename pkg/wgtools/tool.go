// Package wgtools wraps the wireguard-tools `wg` command line utility.
//
// Every operation launches `wg` with fixed arguments, optionally writes to its
// stdin, and returns its trimmed standard output. No key material is generated
// or derived in Go; `wg` does all of the cryptographic work.
package wgtools

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// DefaultBinary is the name looked up on PATH when no command is configured.
const DefaultBinary = "wg"

var (
	// ErrNotInstalled is returned when the first element of the command cannot
	// be found. With a prefix like sudo, a missing wg is reported by sudo
	// itself and surfaces as *CommandError instead.
	ErrNotInstalled = errors.New("wireguard-tools not installed")

	// ErrEmptyOutput is returned when a key-producing subcommand prints nothing.
	ErrEmptyOutput = errors.New("empty output from wg")

	// ErrReservedInterface is returned when "all" or "interfaces" is passed
	// where a single interface name is required.
	ErrReservedInterface = errors.New("reserved interface name")
)

// CommandError reports a wg invocation that exited with a nonzero status.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Tool runs wg subcommands. Command is the argv prefix prepended to every call,
// e.g. []string{"wg"} or []string{"sudo", "wg"}. Env entries are appended to
// the inherited environment (for example "WG_HIDE_KEYS=never").
type Tool struct {
	Command []string
	Env     []string
	Logger  *slog.Logger
}

// New returns a Tool using the given argv prefix. With no arguments the wg
// binary is resolved from PATH.
func New(command ...string) *Tool {
	if len(command) == 0 {
		command = []string{DefaultCommand()}
	}
	return &Tool{Command: command}
}

// DefaultCommand returns the absolute path of wg if it is on PATH, otherwise the
// bare binary name so that the failure surfaces at call time.
func DefaultCommand() string {
	if path, err := exec.LookPath(DefaultBinary); err == nil {
		return path
	}
	return DefaultBinary
}

var (
	defaultMu   sync.RWMutex
	defaultTool *Tool
)

// Default returns the Tool used by the package-level functions.
func Default() *Tool {
	defaultMu.RLock()
	t := defaultTool
	defaultMu.RUnlock()
	if t != nil {
		return t
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultTool == nil {
		defaultTool = New()
	}
	return defaultTool
}

// SetDefault replaces the Tool used by the package-level functions. Passing nil
// resets it to a PATH lookup on next use.
func SetDefault(t *Tool) {
	defaultMu.Lock()
	defaultTool = t
	defaultMu.Unlock()
}

func (t *Tool) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

// argv builds the full command line for a subcommand.
func (t *Tool) argv(args ...string) []string {
	command := t.Command
	if len(command) == 0 {
		command = []string{DefaultBinary}
	}
	out := make([]string, 0, len(command)+len(args))
	out = append(out, command...)
	return append(out, args...)
}

// run executes one wg subcommand and returns its trimmed stdout. input, when
// non-nil, is written to the process's stdin.
func (t *Tool) run(input io.Reader, args ...string) (string, error) {
	argv := t.argv(args...)
	t.logger().Debug("running wg", "argv", argv, "stdin", input != nil)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = input
	if len(t.Env) > 0 {
		cmd.Env = append(os.Environ(), t.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr := &CommandError{
				Args:     argv,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
				Err:      err,
			}
			t.logger().Debug("wg failed", "argv", argv, "exit_code", cerr.ExitCode, "stderr", cerr.Stderr)
			return "", cerr
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s: %v", ErrNotInstalled, argv[0], err)
		}
		return "", fmt.Errorf("failed to run %s: %w", strings.Join(argv, " "), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// runKey is run for subcommands that must print a key.
func (t *Tool) runKey(input io.Reader, args ...string) (string, error) {
	out, err := t.run(input, args...)
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", fmt.Errorf("%w: wg %s", ErrEmptyOutput, strings.Join(args, " "))
	}
	return out, nil
}

// Version returns the output of `wg --version`.
func (t *Tool) Version() (string, error) {
	out, err := t.run(nil, "--version")
	if err != nil {
		return "", fmt.Errorf("failed to get wg version: %w", err)
	}
	return out, nil
}
