// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for webdesk.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"webdesk-cli/internal/config"
	"webdesk-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug-level diagnostics
	verbose bool
	// rootDir overrides the installation root
	rootDir string
	// standalone selects the single-user build profile
	standalone bool
	// configDir overrides the configuration fragment directory
	configDir string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "webdesk",
		Short: "Build orchestrator for webdesk installations",
		Long: TitleStyle.Render("webdesk") + SubtitleStyle.Render(" - Build orchestrator for webdesk installations") + `

webdesk assembles a web desktop installation from layered configuration
fragments, discovered packages and themes: it bundles the client
distribution, regenerates the settings documents and package manifest,
and emits ready-to-include webserver configuration.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Drop configuration fragments into <root>/config/*.json
  2. Install packages under <root>/packages/<repository>/
  3. Run: webdesk build

` + SubtitleStyle.Render("Examples:") + `
  webdesk build                   Bundle everything and regenerate outputs
  webdesk package list            List discovered packages
  webdesk package build --all     Rebuild every package
  webdesk settings client         Regenerate dist/settings.js
  webdesk watch                   Rebuild on filesystem changes
  webdesk explain bundler-missing Show help for a reported issue`,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "installation root (default is the working directory)")
	rootCmd.PersistentFlags().BoolVar(&standalone, "standalone", false, "build the single-user profile")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "configuration directory (default is <root>/config)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serverConfCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(newCompletionCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		renderActionable(err, os.Stderr)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// renderActionable prints the remediation detail the plain error message
// omits: suggestions, and in verbose mode the full error chain. The
// headline itself has already been printed by the command runner.
func renderActionable(err error, w io.Writer) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	if !ae.HasSuggestions() && !verbose {
		return
	}
	fmt.Fprintln(w, formatErrorForDisplay(err, verbose))
}

// loadRuntime resolves the process-wide runtime settings from the
// WEBDESK_* environment with the persistent flags layered on top.
func loadRuntime(cmd *cobra.Command) (config.Runtime, error) {
	v := config.NewRuntimeViper()
	bindings := map[string]string{
		"root":       "root",
		"debug":      "verbose",
		"standalone": "standalone",
	}
	for key, flagName := range bindings {
		flag := cmd.Root().PersistentFlags().Lookup(flagName)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return config.Runtime{}, issue.WrapWithOperation(err, fmt.Sprintf("bind --%s flag", flagName))
		}
	}
	return config.LoadRuntime(v)
}

// newLogger builds the CLI's structured logger. Debug level is gated on
// the resolved runtime, so WEBDESK_DEBUG works the same as --verbose.
func newLogger(rt config.Runtime) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if rt.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// formatErrorForDisplay renders an error for the terminal, preferring the
// actionable form with its suggestions when available.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
