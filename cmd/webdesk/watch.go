// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"webdesk-cli/internal/task"
	"webdesk-cli/internal/watch"
)

// watchDebounce overrides the event coalescing window
var watchDebounce time.Duration

// watchCmd rebuilds outputs whenever inputs under the root change.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild outputs when inputs change",
	Long: `Watch the configuration fragments, package descriptors and package
sources under the installation root and rerun the matching build and
regeneration tasks when they change. Events are debounced so editor
write bursts trigger a single rebuild.

Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(rt)

		w, err := watch.New(watch.Config{
			RootDir:  rt.RootDir,
			Patterns: watch.DefaultPatterns(),
			Debounce: watchDebounce,
			Logger:   logger,
			OnChange: func(ctx context.Context, changed []string) error {
				// Re-read configuration and re-discover packages per
				// batch: the change that woke us may be exactly what
				// alters the tree or the package set.
				env, err := buildEnv(ctx, cmd)
				if err != nil {
					return err
				}
				registry := task.Builtin()
				for _, step := range watch.Plan(changed) {
					env.Args = step.Args
					if err := registry.Run(ctx, step.Task, env); err != nil {
						return err
					}
				}
				return nil
			},
		})
		if err != nil {
			return err
		}
		logger.Info("watching for changes", "root", rt.RootDir)
		return w.Run(cmd.Context())
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before a rebuild (default 500ms)")
}
