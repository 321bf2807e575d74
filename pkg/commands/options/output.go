// Package options defines shared flag helpers for CLI commands.
package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// FormatOptions selects how a list is printed.
type FormatOptions struct {
	Output string
}

var formats = []string{"table", "json", "yaml"}

// AddFormatArg registers --output/-o.
func AddFormatArg(cmd *cobra.Command, o *FormatOptions) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", "table",
		fmt.Sprintf("Output format. One of %s.", strings.Join(formats, ", ")))
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return formats, cobra.ShellCompDirectiveNoFileComp
	})
}

// Validate rejects unknown formats before any work is done.
func (o *FormatOptions) Validate() error {
	for _, f := range formats {
		if strings.EqualFold(o.Output, f) {
			o.Output = f
			return nil
		}
	}
	return fmt.Errorf("unknown output %q, want one of %s", o.Output, strings.Join(formats, ", "))
}
