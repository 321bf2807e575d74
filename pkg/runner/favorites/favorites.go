// Package favorites prints the saved list.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/printers"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

type Favorites struct {
	Session *app.Session
	Output  string
	Out     io.Writer
}

func (f *Favorites) Do(ctx context.Context) error {
	out := f.Out
	if out == nil {
		out = color.Output
	}
	notices := f.Session.StartLocal(ctx)
	list := f.Session.Favorites.All()

	switch f.Output {
	case "", OutputTable:
		pp := &printers.PrettyPrint{Out: out}
		pp.Notices(notices)
		pp.TitleWithCount("Saved", len(list))
		pp.Favorites(list)
		return nil
	case OutputJSON:
		b, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	case OutputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(list); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output %q, want one of table, json, yaml", f.Output)
	}
}
