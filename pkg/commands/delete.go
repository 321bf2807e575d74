package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/shoptrack/pkg/commands/options"
	"tableflip.dev/shoptrack/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a point of interest from the saved list.",
		Example: `
shoptrack delete "Bean There"
shoptrack delete "Bean There" --yes
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

			r := remove.Remove{
				Session: sess,
				Name:    strings.Join(args, " "),
				Yes:     co.Yes,
				Confirm: options.Confirmer(cmd),
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(r.Do(context.Background()))
		},
	}

	options.AddConfirmArg(cmd, co)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
