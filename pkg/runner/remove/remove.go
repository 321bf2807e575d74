// Package remove deletes an entry from the saved list.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/printers"
)

// ErrAborted is returned when the user declines the confirmation.
var ErrAborted = errors.New("delete aborted")

type Remove struct {
	Session *app.Session
	Name    string
	// Yes skips Confirm.
	Yes bool
	// Confirm asks the user; it is required unless Yes is set.
	Confirm func(question string) (bool, error)
	Out     io.Writer
}

func (r *Remove) Do(ctx context.Context) error {
	out := r.Out
	if out == nil {
		out = color.Output
	}
	pp := &printers.PrettyPrint{Out: out}
	pp.Notices(r.Session.StartLocal(ctx))

	id := poi.Identity(r.Name)
	if _, ok := r.Session.Favorites.FindByIdentity(id); !ok {
		_, _ = color.New(color.Faint).Fprintf(out, "%s is not saved\n", r.Name)
		return nil
	}

	if !r.Yes {
		if r.Confirm == nil {
			return errors.New("refusing to delete without confirmation, pass --yes")
		}
		ok, err := r.Confirm(fmt.Sprintf("Are you sure you want to delete %s", r.Name))
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	list, err := r.Session.Delete(ctx, id)
	if err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Fprintf(out, "Deleted %s\n", r.Name)
	pp.TitleWithCount("Saved", len(list))
	pp.Favorites(list)
	return nil
}
