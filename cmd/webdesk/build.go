// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"webdesk-cli/internal/task"
)

// buildCmd runs the whole pipeline: bundle the core distribution and every
// package, then regenerate the manifest, settings and webserver documents.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Bundle the installation and regenerate all outputs",
	Long: `Bundle the core distribution and every discovered package, then
regenerate the package manifest, the client and server settings and the
webserver configuration.

This is the command to run after installing packages or changing
configuration fragments. Individual steps are available as their own
subcommands (manifest, settings, serverconf, package build).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		return runTasks(cmd.Context(), env,
			task.BuildDist,
			task.BuildPackage,
			task.Manifest,
			task.SettingsClient,
			task.SettingsServer,
			task.ServerConf,
		)
	},
}
