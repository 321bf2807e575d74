package shop

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/favorites"
	"tableflip.dev/shoptrack/pkg/store"
	"tableflip.dev/shoptrack/pkg/theme"
)

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, sess *app.Session) tea.Cmd {
	if sess == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := sess.Watch(ctx)
		if err != nil || ch == nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// handleWatchEvent refreshes the lists; the session has already reloaded the
// favorites by the time the event arrives.
func (m *Model) handleWatchEvent(ev store.Event) {
	if ev.Type == store.EventInvalidated || ev.Key == theme.Key {
		if _, err := m.sess.Theme.Load(m.ctx); err != nil {
			m.setStatus("ERR: " + err.Error())
		}
		m.applyTheme()
	}
	if ev.Type == store.EventInvalidated || ev.Key == favorites.Key {
		m.refreshSaved()
		m.refreshMarkers()
		m.setStatus("Saved list changed on disk")
	}
}
