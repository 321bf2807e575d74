package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/shoptrack/pkg/commands/options"
	"tableflip.dev/shoptrack/pkg/runner/save"
)

func addSave(topLevel *cobra.Command) {
	no := &options.NoteOptions{}

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a point of interest, optionally with a note.",
		Example: `
shoptrack save "Bean There" --note "great espresso"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			sess, _, done, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			s := save.Save{Session: sess, Name: strings.Join(args, " "), Out: cmd.OutOrStdout()}
			if no.Changed(cmd) {
				s.Note = &no.Note
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddNoteArg(cmd, no)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
