package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/shoptrack/pkg/runner/catalog"
)

func addCatalog(topLevel *cobra.Command) {
	var inView bool

	cmd := &cobra.Command{
		Use:     "catalog [search]",
		Aliases: []string{"list", "ls"},
		Short:   "List the points of interest on the map.",
		Example: `
shoptrack catalog
shoptrack catalog bean
shoptrack catalog --in-view
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			sess, _, done, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			c := catalog.Catalog{Session: sess, InView: inView, Out: cmd.OutOrStdout()}
			if len(args) == 1 {
				c.Query = args[0]
			}
			return oo.HandleError(c.Do(context.Background()))
		},
	}

	cmd.Flags().BoolVar(&inView, "in-view", false, "Only list points of interest inside the current map region.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
