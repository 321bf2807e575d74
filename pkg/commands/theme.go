package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/shoptrack/pkg/runner/theme"
)

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the color theme.",
		ValidArgs: []string{"dark", "light", "toggle"},
		Args:      cobra.MaximumNArgs(1),
		Example: `
shoptrack theme
shoptrack theme dark
shoptrack theme toggle
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			sess, _, done, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			t := theme.Theme{Session: sess, Out: cmd.OutOrStdout()}
			if len(args) == 1 {
				t.Mode = args[0]
			}
			return oo.HandleError(t.Do(context.Background()))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
