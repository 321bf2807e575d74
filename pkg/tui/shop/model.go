// Package shop is the interactive terminal UI: a map screen with the catalog,
// a detail panel with a note editor, and the saved list.
package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/favorites"
	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/store"
	"tableflip.dev/shoptrack/pkg/theme"
)

type screen int

const (
	screenMap screen = iota
	screenSaved
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeEditNote
	modeSavedNote
	modeConfirmDelete
)

// Model contains UI state.
type Model struct {
	sess   *app.Session
	ctx    context.Context
	cancel context.CancelFunc

	screen screen
	mode   mode

	markers list.Model
	saved   list.Model
	input   textinput.Model
	query   string

	// target is the saved entry being edited or deleted.
	target poi.Identity

	// saving is set while a save runs; key presses are held back until it
	// reports.
	saving bool

	termWidth  int
	termHeight int
	status     string
	styles     theme.Styles

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New creates a new UI model backed by the session.
func New(sess *app.Session) *Model {
	del := list.NewDefaultDelegate()
	del.SetSpacing(0)

	markers := list.New([]list.Item{}, del, 36, 20)
	markers.Title = "Points of interest"
	markers.SetShowHelp(false)
	markers.SetShowStatusBar(false)
	markers.SetFilteringEnabled(false)

	saved := list.New([]list.Item{}, del, 36, 20)
	saved.Title = "Saved"
	saved.SetShowHelp(false)
	saved.SetShowStatusBar(false)
	saved.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "Add your notes here"
	ti.CharLimit = 512
	ti.Prompt = ""

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		sess:    sess,
		ctx:     ctx,
		cancel:  cancel,
		markers: markers,
		saved:   saved,
		input:   ti,
		styles:  theme.NewStyles(theme.PaletteFor(theme.Light)),
	}
	m.applyTheme()
	return m
}

type startedMsg struct {
	notices []app.Notice
}

type savedMsg struct {
	name string
	err  error
}

type notesUpdatedMsg struct {
	name string
	err  error
}

type deletedMsg struct {
	name string
	err  error
}

type themeMsg struct {
	mode theme.Mode
	err  error
}

type errMsg struct{ err error }

// Init loads the session and starts watching the store.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startCmd(), startWatchCmd(m.ctx, m.sess))
}

func (m *Model) startCmd() tea.Cmd {
	sess, ctx := m.sess, m.ctx
	if sess == nil {
		return nil
	}
	return func() tea.Msg {
		return startedMsg{notices: sess.Start(ctx)}
	}
}

func (m *Model) saveCmd() tea.Cmd {
	sess, ctx := m.sess, m.ctx
	m.saving = true
	name := ""
	if st := sess.Selection.State(); st.Active != nil {
		name = st.Active.Name
	}
	return func() tea.Msg {
		return savedMsg{name: name, err: sess.ConfirmSave(ctx)}
	}
}

func (m *Model) retryCmd() tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		return savedMsg{name: "saved list", err: sess.RetrySave(ctx)}
	}
}

func (m *Model) updateNotesCmd(id poi.Identity, notes string) tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		_, err := sess.UpdateNotes(ctx, id, notes)
		return notesUpdatedMsg{name: string(id), err: err}
	}
}

func (m *Model) deleteCmd(id poi.Identity) tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		_, err := sess.Delete(ctx, id)
		return deletedMsg{name: string(id), err: err}
	}
}

func (m *Model) toggleThemeCmd() tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		md, err := sess.Theme.Toggle(ctx)
		return themeMsg{mode: md, err: err}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	skipListRouting := false

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case startedMsg:
		m.applyTheme()
		m.refreshMarkers()
		m.refreshSaved()
		if len(msg.notices) > 0 {
			m.setStatus(msg.notices[len(msg.notices)-1].Message)
		}
	case errMsg:
		m.setStatus("ERR: " + msg.err.Error())
	case savedMsg:
		cmds = append(cmds, m.handleSaved(msg))
	case notesUpdatedMsg:
		if msg.err != nil {
			m.setStatus("ERR: " + msg.err.Error())
			break
		}
		m.refreshSaved()
		m.setStatus("Updated notes for " + msg.name)
	case deletedMsg:
		if msg.err != nil {
			m.setStatus("ERR: " + msg.err.Error())
			break
		}
		m.refreshSaved()
		m.refreshMarkers()
		m.setStatus("Deleted " + msg.name)
	case themeMsg:
		m.applyTheme()
		if msg.err != nil {
			m.setStatus("ERR: " + msg.err.Error())
			break
		}
		m.setStatus(fmt.Sprintf("Theme set to %s", msg.mode))
	case watchStartedMsg:
		if msg.err != nil {
			m.setStatus("ERR: watch " + msg.err.Error())
			break
		}
		if msg.ch == nil {
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
	case tea.KeyPressMsg:
		skipListRouting = m.handleKeyPress(msg, &cmds)
	}

	if !skipListRouting && m.mode == modeBrowse {
		var cmd tea.Cmd
		switch m.screen {
		case screenMap:
			m.markers, cmd = m.markers.Update(msg)
		case screenSaved:
			m.saved, cmd = m.saved.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleSaved(msg savedMsg) tea.Cmd {
	m.saving = false
	if msg.err != nil {
		var writeErr *favorites.StorageWriteError
		if errors.As(msg.err, &writeErr) {
			m.setStatus("ERR: could not save, press r to retry: " + writeErr.Err.Error())
		} else {
			m.setStatus("ERR: " + msg.err.Error())
		}
		// The draft is still held by the controller; let the user keep typing.
		if m.mode == modeEditNote {
			return m.input.Focus()
		}
		return nil
	}
	if m.mode == modeEditNote {
		m.input.Blur()
		m.mode = modeBrowse
	}
	m.refreshMarkers()
	m.refreshSaved()
	m.setStatus("Saved " + msg.name)
	return nil
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	if msg.String() == "ctrl+c" {
		m.quit(cmds)
		return true
	}
	if m.saving {
		m.setStatus("Saving, please wait")
		return true
	}
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg, cmds)
	case modeEditNote:
		return m.handleEditNoteKey(msg, cmds)
	case modeSavedNote:
		return m.handleSavedNoteKey(msg, cmds)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg, cmds)
	}
	if m.screen == screenSaved {
		return m.handleSavedKey(msg, cmds)
	}
	return m.handleMapKey(msg, cmds)
}

func (m *Model) quit(cmds *[]tea.Cmd) {
	m.stopWatch()
	m.cancel()
	*cmds = append(*cmds, tea.Quit)
}

func (m *Model) handleMapKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	detailOpen := m.sess.Selection.State().DetailOpen
	switch msg.String() {
	case "q":
		m.quit(cmds)
	case "enter":
		it, ok := m.markers.SelectedItem().(markerItem)
		if !ok {
			return true
		}
		m.sess.Select(it.marker.PointOfInterest)
		m.refreshMarkers()
	case "e", "i":
		st := m.sess.Selection.State()
		if !st.DetailOpen {
			return true
		}
		m.mode = modeEditNote
		m.input.Placeholder = "Add your notes here"
		m.input.SetValue(st.NoteDraft)
		m.input.CursorEnd()
		*cmds = append(*cmds, m.input.Focus(), textinput.Blink)
	case "s":
		if !detailOpen {
			return true
		}
		*cmds = append(*cmds, m.saveCmd())
	case "esc":
		if !detailOpen {
			return true
		}
		m.sess.Selection.Close()
		m.refreshMarkers()
	case "/":
		m.mode = modeSearch
		m.input.Placeholder = "Search by name"
		m.input.SetValue(m.query)
		m.input.CursorEnd()
		*cmds = append(*cmds, m.input.Focus(), textinput.Blink)
	case "tab":
		m.screen = screenSaved
		m.refreshSaved()
	case "t":
		*cmds = append(*cmds, m.toggleThemeCmd())
	case "r":
		if m.sess.PendingWrite() == nil {
			return true
		}
		*cmds = append(*cmds, m.retryCmd())
	default:
		return false
	}
	return true
}

func (m *Model) handleSearchKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "enter":
		m.query = m.input.Value()
		m.endInput()
		m.refreshMarkers()
	case "esc":
		m.endInput()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		*cmds = append(*cmds, cmd)
		m.query = m.input.Value()
		m.refreshMarkers()
	}
	return true
}

// handleEditNoteKey mirrors every keystroke into the controller's draft so
// it stays the single source of truth.
func (m *Model) handleEditNoteKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "enter":
		m.sess.Selection.Edit(m.input.Value())
		m.input.Blur()
		*cmds = append(*cmds, m.saveCmd())
	case "esc":
		m.sess.Selection.Edit(m.input.Value())
		m.endInput()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		*cmds = append(*cmds, cmd)
		m.sess.Selection.Edit(m.input.Value())
	}
	return true
}

func (m *Model) handleSavedKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	it, hasItem := m.saved.SelectedItem().(savedItem)
	switch msg.String() {
	case "q":
		m.quit(cmds)
	case "tab", "esc":
		m.screen = screenMap
		m.refreshMarkers()
	case "enter", "m":
		if !hasItem {
			return true
		}
		m.sess.Navigate(it.entry.PointOfInterest)
		m.screen = screenMap
		m.refreshMarkers()
		if i := indexOf(m.markers.Items(), it.entry.Identity()); i >= 0 {
			m.markers.Select(i)
		}
	case "e":
		if !hasItem {
			return true
		}
		m.target = it.entry.Identity()
		m.mode = modeSavedNote
		m.input.Placeholder = "Edit notes"
		m.input.SetValue(it.entry.Notes)
		m.input.CursorEnd()
		*cmds = append(*cmds, m.input.Focus(), textinput.Blink)
	case "d", "x":
		if !hasItem {
			return true
		}
		m.target = it.entry.Identity()
		m.mode = modeConfirmDelete
	case "t":
		*cmds = append(*cmds, m.toggleThemeCmd())
	default:
		return false
	}
	return true
}

func (m *Model) handleSavedNoteKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "enter":
		*cmds = append(*cmds, m.updateNotesCmd(m.target, m.input.Value()))
		m.endInput()
	case "esc":
		m.endInput()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		*cmds = append(*cmds, cmd)
	}
	return true
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "y", "Y":
		*cmds = append(*cmds, m.deleteCmd(m.target))
		m.target = ""
		m.mode = modeBrowse
	case "n", "N", "esc":
		m.target = ""
		m.mode = modeBrowse
		m.setStatus("Delete cancelled")
	}
	return true
}

func (m *Model) endInput() {
	m.input.Blur()
	m.input.Reset()
	m.mode = modeBrowse
}

func (m *Model) refreshMarkers() {
	if m.sess == nil {
		return
	}
	prev := m.markers.Index()
	m.markers.SetItems(markerItems(m.sess.Markers(), m.query))
	if n := len(m.markers.Items()); n > 0 && prev < n {
		m.markers.Select(prev)
	}
}

func (m *Model) refreshSaved() {
	if m.sess == nil {
		return
	}
	prev := m.saved.Index()
	m.saved.SetItems(savedItems(m.sess.Favorites.All()))
	if n := len(m.saved.Items()); n > 0 {
		if prev >= n {
			prev = n - 1
		}
		m.saved.Select(prev)
	}
}

func (m *Model) applyTheme() {
	if m.sess == nil {
		return
	}
	m.styles = theme.NewStyles(m.sess.Theme.Palette())
}

func (m *Model) setStatus(msg string) {
	m.status = msg
}

// Run launches the interactive TUI program.
func Run(sess *app.Session) error {
	m := New(sess)
	defer m.cancel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
