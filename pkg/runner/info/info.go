package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/config"
	"tableflip.dev/shoptrack/pkg/printers"
	"tableflip.dev/shoptrack/pkg/store"
)

type Info struct {
	Config  *config.Config
	Session *app.Session
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("SHOPTRACK_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "SHOPTRACK_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "SHOPTRACK_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}
	if n.Session == nil {
		return fmt.Errorf("no session configured")
	}

	pp := &printers.PrettyPrint{Out: out}
	pp.Notices(n.Session.StartLocal(ctx))

	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(faint.Sprint("store.backend"), n.Config.Store.Backend)
	switch n.Config.StoreOptions().Backend {
	case store.BackendRedis:
		tbl.AddRow(faint.Sprint("redis.addr"), fmt.Sprintf("%s/%d", n.Config.Redis.Addr, n.Config.Redis.DB))
	case store.BackendMemory:
	default:
		tbl.AddRow(faint.Sprint("store.path"), n.Config.Store.Path)
	}
	tbl.AddRow(faint.Sprint("catalog.url"), n.Config.Catalog.URL)
	tbl.AddRow(faint.Sprint("location"), fmt.Sprintf("%t", n.Config.Location.Enabled))
	tbl.AddRow(faint.Sprint("theme"), string(n.Session.Theme.Mode()))
	tbl.AddRow(faint.Sprint("saved"), fmt.Sprintf("%d", len(n.Session.Favorites.All())))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
