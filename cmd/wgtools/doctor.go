package main

import (
	"fmt"
	"os"

	"github.com/kamikazebr/wgtools/internal/config"
	"github.com/kamikazebr/wgtools/internal/diagnostics"
	"github.com/kamikazebr/wgtools/internal/preflight"
	"github.com/kamikazebr/wgtools/internal/ui"
	"github.com/kamikazebr/wgtools/pkg/wgtools"
	"github.com/spf13/cobra"
)

var doctorInstall bool

func initDoctorFlags() {
	doctorCmd.Flags().BoolVar(&doctorInstall, "install", false, "Offer to install wireguard-tools when it is missing")
}

func runDoctor(cmd *cobra.Command, args []string) {
	tool := wgtools.Default()

	if doctorInstall {
		if _, err := preflight.PromptInstall(tool.Command); err != nil {
			fail("Install failed", err)
		}
	}

	report := diagnostics.Run(&diagnostics.Env{
		Config:      cfg,
		ConfigErr:   cfgErr,
		Tool:        tool,
		ReadDevices: wgtools.ReadDevices,
	})

	if format != config.FormatText {
		if err := printStructured(os.Stdout, report, format); err != nil {
			fail("Error", err)
		}
	} else {
		printReport(report)
	}

	if report.Summary.Errors > 0 {
		os.Exit(1)
	}
}

func printReport(report diagnostics.Report) {
	fmt.Println(ui.TitleStyle.Render("wgtools doctor"))
	fmt.Printf("%s on %s\n", report.Version, report.Platform)

	category := ""
	for _, c := range report.Checks {
		if c.Category != category {
			category = c.Category
			fmt.Printf("\n%s\n", category)
		}

		line := fmt.Sprintf("  %s %s: %s", c.Status.Symbol(), c.Name, c.Message)
		switch c.Status {
		case diagnostics.CheckPassed:
			line = ui.SuccessStyle.Render(line)
		case diagnostics.CheckWarning:
			line = ui.WarningStyle.Render(line)
		case diagnostics.CheckError:
			line = ui.ErrorStyle.Render(line)
		}
		fmt.Println(line)

		for _, fix := range c.Fixes {
			fmt.Println(ui.HelpStyle.Render("      → " + fix))
		}
	}

	s := report.Summary
	fmt.Printf("\n%d passed, %d warnings, %d errors, %d info\n", s.Passed, s.Warnings, s.Errors, s.Info)
}
