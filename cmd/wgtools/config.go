package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/kamikazebr/wgtools/internal/config"
	"github.com/spf13/cobra"
)

var (
	configSetFormat  string
	configSetCommand string
	configSetSudo    bool
	configReset      bool
)

func initConfigFlags() {
	configCmd.Flags().StringVar(&configSetFormat, "set-format", "", "Default output format (text, json, yaml)")
	configCmd.Flags().StringVar(&configSetCommand, "set-command", "", "Command used to run wg, e.g. \"/usr/bin/wg\"")
	configCmd.Flags().BoolVar(&configSetSudo, "set-sudo", false, "Run wg through sudo")
	configCmd.Flags().BoolVar(&configReset, "reset", false, "Delete the saved configuration")
}

func runConfig(cmd *cobra.Command, args []string) {
	if configReset {
		if err := config.Delete(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fail("Failed to reset config", err)
		}
		fmt.Println("✓ Configuration reset to defaults")
		return
	}

	changed := false
	if cmd.Flags().Changed("set-format") {
		if err := config.ValidateFormat(configSetFormat); err != nil {
			fail("Error", err)
		}
		cfg.OutputFormat = configSetFormat
		changed = true
	}
	if cmd.Flags().Changed("set-command") {
		cfg.WGCommand = strings.Fields(configSetCommand)
		changed = true
	}
	if cmd.Flags().Changed("set-sudo") {
		cfg.UseSudo = configSetSudo
		changed = true
	}

	if changed {
		if err := cfg.Save(); err != nil {
			fail("Failed to save config", err)
		}
		fmt.Println("✓ Configuration saved")
	}

	dir, err := config.GetConfigDir()
	if err != nil {
		fail("Error", err)
	}

	command := cfg.Command()
	if len(command) == 0 {
		command = []string{"wg (from PATH)"}
	}

	fmt.Printf("Config file:   %s\n", filepath.Join(dir, config.ConfigFile))
	fmt.Printf("wg command:    %s\n", strings.Join(command, " "))
	fmt.Printf("Use sudo:      %t\n", cfg.UseSudo)
	fmt.Printf("Output format: %s\n", cfg.OutputFormat)
}
