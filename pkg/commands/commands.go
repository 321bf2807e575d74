package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "shoptrack",
		Short: base.Wrap80("Browse coffee shops, keep notes and a saved list on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addCatalog(topLevel)
	addFavorites(topLevel)
	addShow(topLevel)
	addSave(topLevel)
	addNote(topLevel)
	addDelete(topLevel)
	addRegion(topLevel)
	addTheme(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
