package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/shoptrack/pkg/runner/region"
)

func addRegion(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "region [name]",
		Short: "Print the map region, centered on a point of interest when one is named.",
		Example: `
shoptrack region
shoptrack region "Bean There"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			sess, _, done, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			r := region.Region{Session: sess, Name: strings.Join(args, " "), Out: cmd.OutOrStdout()}
			return oo.HandleError(r.Do(context.Background()))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
