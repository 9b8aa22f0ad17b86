package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kamikazebr/wgtools/pkg/utils"
)

const (
	ConfigFile = "config.json"

	// Environment overrides, also read from a .env file in the working directory.
	EnvCommand = "WGTOOLS_WG"
	EnvSudo    = "WGTOOLS_SUDO"
	EnvFormat  = "WGTOOLS_FORMAT"
)

// Output formats understood by the CLI.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// GetConfigDir returns the config directory path for the current user
// When running with sudo, it returns the actual user's home directory (not /root)
func GetConfigDir() (string, error) {
	if dir := os.Getenv("WGTOOLS_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	_, home, err := utils.GetActualUser()
	if err != nil {
		return "", fmt.Errorf("failed to get user directory: %w", err)
	}

	return filepath.Join(home, ".wgtools"), nil
}

type Config struct {
	// WGCommand is the argv used to invoke wg, e.g. ["/usr/bin/wg"].
	WGCommand []string `json:"wg_command,omitempty"`
	// UseSudo prefixes every wg invocation with sudo.
	UseSudo      bool   `json:"use_sudo"`
	OutputFormat string `json:"output_format,omitempty"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		OutputFormat: FormatText,
	}
}

// Load reads the config file (if any), then applies .env and environment
// overrides. A missing config file yields DefaultConfig.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(configDir, ConfigFile))
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.OutputFormat == "" {
		cfg.OutputFormat = FormatText
	}
	if err := ValidateFormat(cfg.OutputFormat); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvCommand); v != "" {
		c.WGCommand = strings.Fields(v)
	}
	if v := os.Getenv(EnvSudo); v != "" {
		useSudo, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSudo, err)
		}
		c.UseSudo = useSudo
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.OutputFormat = v
	}
	return nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	if err := utils.MkdirAllWithOwnership(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFile)

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := utils.WriteFileWithOwnership(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Delete deletes the configuration file
func Delete() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	return os.Remove(filepath.Join(configDir, ConfigFile))
}

// Command returns the argv prefix for wg. An empty result means "look wg up
// on PATH".
func (c *Config) Command() []string {
	command := append([]string(nil), c.WGCommand...)
	if c.UseSudo {
		if len(command) == 0 {
			command = []string{"wg"}
		}
		command = append([]string{"sudo"}, command...)
	}
	return command
}

// ValidateFormat reports whether format is a supported output format.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want %s, %s or %s)", format, FormatText, FormatJSON, FormatYAML)
}
