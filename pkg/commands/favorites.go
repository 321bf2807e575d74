package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/shoptrack/pkg/commands/options"
	"tableflip.dev/shoptrack/pkg/runner/favorites"
)

func addFavorites(topLevel *cobra.Command) {
	fo := &options.FormatOptions{}

	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"saved"},
		Short:   "List saved points of interest and their notes.",
		Example: `
shoptrack favorites
shoptrack favorites -o yaml
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return fo.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			sess, _, done, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			f := favorites.Favorites{Session: sess, Output: fo.Output, Out: cmd.OutOrStdout()}
			return oo.HandleError(f.Do(context.Background()))
		},
	}

	options.AddFormatArg(cmd, fo)
	topLevel.AddCommand(cmd)
}
