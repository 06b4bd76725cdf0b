// SPDX-License-Identifier: MPL-2.0

package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sort"

	"webdesk-cli/internal/issue"
)

// defaultBundler is looked up on PATH when the configuration does not pin
// a bundler executable under build.bundler.
const defaultBundler = "webdesk-bundler"

// BundlerOptions describes one bundler invocation. The bundler is an
// external program; options travel to it as WEBDESK_BUNDLE_* environment
// variables so the CLI stays agnostic of its flag surface.
type BundlerOptions struct {
	// Target is what gets bundled: "dist" for the core distribution or a
	// qualified package name.
	Target string
	// SourceDir is the directory holding the sources to bundle.
	SourceDir string
	// OutputDir receives the bundle artifacts.
	OutputDir string
	// Minimize requests minified output.
	Minimize bool
	// Standalone selects the single-user build profile.
	Standalone bool
	// Watch keeps the bundler running in incremental mode.
	Watch bool
	// Extra carries the free-form build section from a package descriptor,
	// forwarded verbatim as JSON.
	Extra map[string]any
}

// environ renders the options as WEBDESK_BUNDLE_* variables, sorted for
// stable subprocess environments.
func (o BundlerOptions) environ() []string {
	vars := map[string]string{
		"WEBDESK_BUNDLE_TARGET":     o.Target,
		"WEBDESK_BUNDLE_SOURCE":     o.SourceDir,
		"WEBDESK_BUNDLE_OUTPUT":     o.OutputDir,
		"WEBDESK_BUNDLE_MINIMIZE":   fmt.Sprintf("%t", o.Minimize),
		"WEBDESK_BUNDLE_STANDALONE": fmt.Sprintf("%t", o.Standalone),
		"WEBDESK_BUNDLE_WATCH":      fmt.Sprintf("%t", o.Watch),
	}
	if len(o.Extra) > 0 {
		// Extra comes from a descriptor that already passed schema
		// validation, so marshaling cannot fail.
		encoded, err := json.Marshal(o.Extra)
		if err == nil {
			vars["WEBDESK_BUNDLE_OPTIONS"] = string(encoded)
		}
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+vars[k])
	}
	return env
}

// bundlerPath resolves the bundler executable, preferring the configured
// build.bundler path over a PATH lookup.
func bundlerPath(env *Env) (string, error) {
	if configured := env.Tree.StringAt("build.bundler", ""); configured != "" {
		return configured, nil
	}
	path, err := exec.LookPath(defaultBundler)
	if err != nil {
		return "", issue.NewErrorContext().
			WithKind(issue.KindNotFound).
			WithOperation("locate bundler").
			WithResource(defaultBundler).
			WithSuggestion("install the bundler or set build.bundler in a configuration fragment").
			WithSuggestion("run 'webdesk explain bundler-missing' for details").
			Wrap(err).
			BuildError()
	}
	return path, nil
}

// runBundler spawns one bundler process and waits for it. The process
// inherits the task's stdio and runs without a deadline; cancellation
// arrives through ctx.
func runBundler(ctx context.Context, env *Env, opts BundlerOptions) error {
	bin, err := bundlerPath(env)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, bin)
	cmd.Dir = env.Runtime.RootDir
	cmd.Env = append(os.Environ(), opts.environ()...)
	cmd.Stdout = env.stdout()
	cmd.Stderr = env.stderr()
	env.logger().Debug("invoking bundler", "bundler", bin, "target", opts.Target)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("bundle %s: %w", opts.Target, err)
	}
	return nil
}
