// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"webdesk-cli/internal/config"
	"webdesk-cli/internal/discovery"
	"webdesk-cli/internal/task"

	"github.com/spf13/cobra"
)

// buildEnv assembles the full task environment: runtime settings, the
// resolved configuration tree and the discovered package and theme sets.
// Every subcommand that touches the installation goes through here.
func buildEnv(ctx context.Context, cmd *cobra.Command) (*task.Env, error) {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(rt)

	baseDir := rt.ConfigDir()
	if configDir != "" {
		baseDir = configDir
	}
	reader := &config.Reader{BaseDir: baseDir, Logger: logger}
	tree, err := reader.Read(ctx)
	if err != nil {
		return nil, err
	}

	disc := discovery.New(tree, rt, logger)
	packages, err := disc.Packages(ctx, disc.Repositories())
	if err != nil {
		return nil, err
	}
	themes, err := disc.Themes()
	if err != nil {
		return nil, err
	}

	return &task.Env{
		Tree:     tree,
		Runtime:  rt,
		Packages: packages,
		Themes:   themes,
		Logger:   logger,
	}, nil
}

// runTasks dispatches the named built-in tasks in order, wrapping any
// failure for display.
func runTasks(ctx context.Context, env *task.Env, names ...string) error {
	registry := task.Builtin()
	for _, name := range names {
		if err := registry.Run(ctx, name, env); err != nil {
			return err
		}
	}
	return nil
}
