// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"webdesk-cli/internal/task"
)

// manifestCmd regenerates the server-side package manifest.
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Regenerate the package manifest",
	Long: `Regenerate server/packages.json from the discovered packages.

The manifest is what the server process loads to know which packages
exist, where their artifacts live and which ones are singular services.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		return runTasks(cmd.Context(), env, task.Manifest)
	},
}

// settingsCmd groups the settings generators.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Regenerate the settings documents",
}

var settingsClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Regenerate dist/settings.js",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		return runTasks(cmd.Context(), env, task.SettingsClient)
	},
}

var settingsServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Regenerate server/settings.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		return runTasks(cmd.Context(), env, task.SettingsServer)
	},
}

// serverConfCmd emits the webserver configuration documents.
var serverConfCmd = &cobra.Command{
	Use:   "serverconf",
	Short: "Regenerate the webserver configuration",
	Long: `Regenerate server/apache.conf and server/nginx.conf from the mime
and proxy sections of the configuration tree. The documents are meant to
be included from the site's main webserver configuration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		return runTasks(cmd.Context(), env, task.ServerConf)
	},
}

func init() {
	settingsCmd.AddCommand(settingsClientCmd)
	settingsCmd.AddCommand(settingsServerCmd)
}
