// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"webdesk-cli/internal/task"
)

// testCmd runs the project's lint engine and test runner.
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the configured lint and test commands",
	Long: `Run the lint engine and test runner configured under build.lint and
build.test, in that order. A lint failure stops the run before tests
start.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		if err := runTasks(cmd.Context(), env, task.Test); err != nil {
			// Tool failures should surface as the CLI's own exit code.
			return &ExitError{Code: 1, Err: err}
		}
		return nil
	},
}
