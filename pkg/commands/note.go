package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/shoptrack/pkg/runner/note"
)

func addNote(topLevel *cobra.Command) {
	n := &note.Note{}

	cmd := &cobra.Command{
		Use:     "note <name> <text>",
		Aliases: []string{"notes"},
		Short:   "Replace the note of a saved point of interest.",
		Example: `
shoptrack note "Bean There" try the cold brew
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a saved name")
			}
			n.Name = args[0]
			n.Text = strings.Join(args[1:], " ")
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return savedCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			sess, _, done, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			n.Session = sess
			n.Out = cmd.OutOrStdout()
			return oo.HandleError(n.Do(context.Background()))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
