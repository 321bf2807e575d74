// Package selection tracks which point of interest is selected, whether its
// detail view is open and the note being drafted for it.
package selection

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/shoptrack/pkg/poi"
)

// ErrNoSelection is returned by ConfirmSave when nothing is selected.
var ErrNoSelection = errors.New("selection: nothing selected")

// Phase is the coarse state of the detail view.
type Phase int

const (
	Idle Phase = iota
	Viewing
	Editing
)

func (p Phase) String() string {
	switch p {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	default:
		return "idle"
	}
}

// State is a snapshot of the controller. It is never persisted.
type State struct {
	Active     *poi.PointOfInterest
	DetailOpen bool
	// Editing names the entry whose note is being edited, empty when none.
	Editing   poi.Identity
	NoteDraft string
}

// Phase derives the coarse state from the fields.
func (s State) Phase() Phase {
	switch {
	case s.Active == nil || !s.DetailOpen:
		return Idle
	case s.Editing != "":
		return Editing
	default:
		return Viewing
	}
}

func (s State) clone() State {
	if s.Active != nil {
		p := *s.Active
		s.Active = &p
	}
	return s
}

// NoteLookup finds the saved note for an identity.
type NoteLookup interface {
	FindByIdentity(id poi.Identity) (poi.SavedEntry, bool)
}

// Saver persists a saved entry.
type Saver interface {
	Save(ctx context.Context, entry poi.SavedEntry) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, entry poi.SavedEntry) error

func (f SaverFunc) Save(ctx context.Context, entry poi.SavedEntry) error { return f(ctx, entry) }

// Controller is the single owner of the selection state.
type Controller struct {
	notes NoteLookup
	saver Saver

	mu        sync.Mutex
	state     State
	observers []func(State)
}

// New returns an idle controller.
func New(notes NoteLookup, saver Saver) *Controller {
	return &Controller{notes: notes, saver: saver}
}

// OnChange registers fn to be called with a copy of the state after every
// transition. Observers run outside the controller's lock.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Select makes p the active point of interest and opens its detail view with
// the saved note pre-filled. Selecting the already active identity while the
// detail is open keeps the current draft.
func (c *Controller) Select(p poi.PointOfInterest) State {
	c.mu.Lock()
	if c.state.DetailOpen && c.state.Active != nil && c.state.Active.Identity() == p.Identity() {
		s := c.state.clone()
		c.mu.Unlock()
		return s
	}

	draft := ""
	if c.notes != nil {
		if saved, ok := c.notes.FindByIdentity(p.Identity()); ok {
			draft = saved.Notes
		}
	}
	c.state = State{Active: &p, DetailOpen: true, NoteDraft: draft}
	return c.transitionLocked()
}

// Navigate handles a point of interest passed in from another screen. It is
// the same as Select.
func (c *Controller) Navigate(p poi.PointOfInterest) State {
	return c.Select(p)
}

// Edit replaces the note draft. It has no effect while idle.
func (c *Controller) Edit(text string) State {
	c.mu.Lock()
	if c.state.Phase() == Idle {
		s := c.state.clone()
		c.mu.Unlock()
		return s
	}
	c.state.Editing = c.state.Active.Identity()
	c.state.NoteDraft = text
	return c.transitionLocked()
}

// ConfirmSave saves the active point of interest with the current draft, then
// closes the detail view. On failure the state and draft are left as they
// were and the error is returned so the user can retry.
func (c *Controller) ConfirmSave(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Phase() == Idle {
		c.mu.Unlock()
		return ErrNoSelection
	}
	active := *c.state.Active
	entry := poi.NewSavedEntry(active, c.state.NoteDraft)
	c.mu.Unlock()

	if err := c.saver.Save(ctx, entry); err != nil {
		return err
	}

	c.mu.Lock()
	// A different selection made while saving wins; the save still stands.
	if c.state.Active == nil || c.state.Active.Identity() != active.Identity() {
		c.mu.Unlock()
		return nil
	}
	c.state = State{}
	c.transitionLocked()
	return nil
}

// Close dismisses the detail view, discarding the draft and the selection.
func (c *Controller) Close() State {
	c.mu.Lock()
	if c.state.Active == nil && !c.state.DetailOpen {
		s := c.state.clone()
		c.mu.Unlock()
		return s
	}
	c.state = State{}
	return c.transitionLocked()
}

// transitionLocked releases the lock and notifies observers.
func (c *Controller) transitionLocked() State {
	s := c.state.clone()
	observers := append([]func(State){}, c.observers...)
	c.mu.Unlock()
	for _, fn := range observers {
		fn(s.clone())
	}
	return s
}
