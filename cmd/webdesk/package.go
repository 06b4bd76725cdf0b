// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"webdesk-cli/internal/issue"
	"webdesk-cli/internal/task"
)

var (
	// packageNames are the packages selected for a scoped build
	packageNames []string
	// packageAll selects every discovered package
	packageAll bool
)

// packageCmd is the parent for package-scoped operations.
var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Build and inspect discovered packages",
}

var packageBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Bundle one or more packages",
	Long: `Bundle the named packages, or every discovered package with --all.

Packages are addressed by their qualified "repository/name" form; a bare
name works when it is unambiguous.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Flag validation happens before any filesystem work.
		if !packageAll && len(packageNames) == 0 {
			return issue.NewErrorContext().
				WithKind(issue.KindValidation).
				WithOperation("build packages").
				WithSuggestion("pass --name <repository/name> for a scoped build").
				WithSuggestion("pass --all to build every discovered package").
				BuildError()
		}
		env, err := buildEnv(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		if !packageAll {
			env.Args = packageNames
		}
		return runTasks(cmd.Context(), env, task.BuildPackage)
	},
}

var packageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered packages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		for _, m := range env.Packages.All() {
			line := CmdStyle.Render(m.QualifiedName()) + SubtitleStyle.Render(" ("+m.Type+")")
			if !m.IsEnabled() {
				line += WarningStyle.Render(" disabled")
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	packageBuildCmd.Flags().StringSliceVarP(&packageNames, "name", "n", nil, "package to build (repeatable)")
	packageBuildCmd.Flags().BoolVar(&packageAll, "all", false, "build every discovered package")
	packageBuildCmd.MarkFlagsMutuallyExclusive("name", "all")

	packageCmd.AddCommand(packageBuildCmd)
	packageCmd.AddCommand(packageListCmd)
}
