package commands

import (
	"context"
	"strconv"
	"strings"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/catalog"
	"tableflip.dev/shoptrack/pkg/config"
	"tableflip.dev/shoptrack/pkg/location"
	"tableflip.dev/shoptrack/pkg/logging"
	"tableflip.dev/shoptrack/pkg/store"
	"tableflip.dev/shoptrack/pkg/viewport"
)

// openSession loads the configuration and builds the session it describes.
// The returned func closes the store.
func openSession() (*app.Session, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := logging.Setup(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := store.Open(cfg.StoreOptions())
	if err != nil {
		return nil, nil, nil, err
	}
	log.Debug().Str("backend", cfg.Store.Backend).Msg("store opened")

	sess := app.New(app.Options{
		Store:    st,
		Catalog:  catalog.New(cfg.Catalog.URL, cfg.Catalog.Timeout, log),
		Location: location.FromConfig(cfg.Location.Enabled, cfg.Location.Latitude, cfg.Location.Longitude),
		Fallback: viewport.Fallback(cfg.Region.Latitude, cfg.Region.Longitude),
		Log:      log,
	})
	return sess, cfg, func() { _ = st.Close() }, nil
}

// savedCompletions offers the saved names for shell completion.
func savedCompletions(toComplete string) []string {
	sess, _, done, err := openSession()
	if err != nil {
		return nil
	}
	defer done()
	sess.StartLocal(context.Background())

	var out []string
	for _, e := range sess.Favorites.All() {
		if strings.HasPrefix(e.Name, toComplete) {
			out = append(out, strconv.Quote(e.Name))
		}
	}
	return out
}
