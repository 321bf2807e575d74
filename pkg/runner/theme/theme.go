// Package theme shows or changes the saved theme preference.
package theme

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/fatih/color"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/printers"
	shoptheme "tableflip.dev/shoptrack/pkg/theme"
)

type Theme struct {
	Session *app.Session
	// Mode is "dark", "light", "toggle" or empty to print the current mode.
	Mode string
	Out  io.Writer
}

func (t *Theme) Do(ctx context.Context) error {
	out := t.Out
	if out == nil {
		out = color.Output
	}
	pp := &printers.PrettyPrint{Out: out}
	pp.Notices(t.Session.StartLocal(ctx))

	state := t.Session.Theme
	switch strings.ToLower(strings.TrimSpace(t.Mode)) {
	case "":
	case "toggle":
		if _, err := state.Toggle(ctx); err != nil {
			return err
		}
	default:
		m, err := shoptheme.ParseMode(t.Mode)
		if err != nil {
			return err
		}
		if err := state.Set(ctx, m); err != nil {
			return err
		}
	}

	styles := shoptheme.NewStyles(state.Palette())
	_, err := fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Center,
		"Theme ",
		styles.Header.Render(string(state.Mode())),
	))
	return err
}
