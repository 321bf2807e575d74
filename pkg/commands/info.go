package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/shoptrack/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where saved data is stored.",
		Example: `
shoptrack info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			sess, cfg, done, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()
			s := info.Info{
				Config:  cfg,
				Session: sess,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
