package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/shoptrack/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Select a point of interest and show its details and note.",
		Example: `
shoptrack show "Bean There"
`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return savedCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			sess, _, done, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			s := show.Show{Session: sess, Name: strings.Join(args, " "), Out: cmd.OutOrStdout()}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
