package options

import (
	"github.com/spf13/cobra"
)

// NoteOptions carries an optional note for save.
type NoteOptions struct {
	Note string
}

func AddNoteArg(cmd *cobra.Command, o *NoteOptions) {
	cmd.Flags().StringVarP(&o.Note, "note", "n", "",
		"Note to attach. Without it an existing note is kept.")
}

// Changed reports whether --note was passed, so an explicit empty note can
// clear the saved one.
func (o *NoteOptions) Changed(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("note")
}
