// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"webdesk-cli/internal/issue"
)

// explainCmd renders the documentation for a reported issue topic.
var explainCmd = &cobra.Command{
	Use:   "explain [topic]",
	Short: "Explain a reported issue in detail",
	Long: `Render the documentation for an issue topic mentioned in an error
message. Without an argument, list every explainable topic.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeTopics,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(out, TitleStyle.Render("Explainable topics"))
			for _, topic := range issue.Topics() {
				fmt.Fprintln(out, "  "+CmdStyle.Render(topic))
			}
			return nil
		}
		i := issue.LookupTopic(args[0])
		if i == nil {
			return issue.NewErrorContext().
				WithKind(issue.KindNotFound).
				WithOperation("explain topic").
				WithResource(args[0]).
				WithSuggestion("run 'webdesk explain' to list the known topics").
				BuildError()
		}
		rendered, err := i.Render("auto")
		if err != nil {
			// Fall back to the raw markdown rather than failing the
			// lookup over a styling problem.
			fmt.Fprintln(out, string(i.MarkdownMsg()))
			return nil
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func completeTopics(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return issue.Topics(), cobra.ShellCompDirectiveNoFileComp
}
