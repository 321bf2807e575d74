package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/shoptrack/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
shoptrack ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, done, err := openSession()
			if err != nil {
				return err
			}
			defer done()
			i := ui.UI{Session: sess}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
