// Package ui launches the interactive terminal UI.
package ui

import (
	"context"
	"errors"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/tui/shop"
)

type UI struct {
	Session *app.Session
}

func (d *UI) Do(ctx context.Context) error {
	if d.Session == nil {
		return errors.New("ui: no session configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return shop.Run(d.Session)
}
