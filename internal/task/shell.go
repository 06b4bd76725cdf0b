// SPDX-License-Identifier: MPL-2.0

package task

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"webdesk-cli/internal/issue"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// runShell executes a single shell command line inside the project root.
// The command runs through an embedded POSIX interpreter, so tool hooks
// behave the same on every platform.
func runShell(ctx context.Context, env *Env, command string) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "command")
	if err != nil {
		return issue.NewErrorContext().
			WithKind(issue.KindParse).
			WithOperation("parse shell command").
			WithResource(command).
			Wrap(err).
			BuildError()
	}
	runner, err := interp.New(
		interp.Dir(env.Runtime.RootDir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(os.Stdin, env.stdout(), env.stderr()),
	)
	if err != nil {
		return fmt.Errorf("create shell runner: %w", err)
	}
	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return fmt.Errorf("%q exited with status %d", command, uint8(status))
		}
		return fmt.Errorf("run %q: %w", command, err)
	}
	return nil
}
