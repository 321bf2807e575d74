package selection

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tableflip.dev/shoptrack/pkg/favorites"
	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/store"
)

type notes map[poi.Identity]string

func (n notes) FindByIdentity(id poi.Identity) (poi.SavedEntry, bool) {
	v, ok := n[id]
	if !ok {
		return poi.SavedEntry{}, false
	}
	return poi.SavedEntry{PointOfInterest: poi.PointOfInterest{Name: string(id)}, Notes: v}, true
}

type recordingSaver struct {
	mu    sync.Mutex
	saved []poi.SavedEntry
	err   error
}

func (r *recordingSaver) Save(_ context.Context, e poi.SavedEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, e)
	return nil
}

var (
	bean = poi.PointOfInterest{Name: "Bean", Latitude: 51.92, Longitude: 4.48}
	cup  = poi.PointOfInterest{Name: "Cup", Latitude: 51.91, Longitude: 4.46}
)

func TestSelectPrefillsSavedNote(t *testing.T) {
	c := New(notes{"Bean": "great espresso"}, &recordingSaver{})

	s := c.Select(bean)
	if s.Phase() != Viewing {
		t.Fatalf("expected viewing, got %v", s.Phase())
	}
	if s.NoteDraft != "great espresso" {
		t.Fatalf("expected pre-filled note, got %q", s.NoteDraft)
	}

	s = c.Select(cup)
	if s.NoteDraft != "" || s.Active.Name != "Cup" {
		t.Fatalf("expected empty draft for unsaved Cup, got %#v", s)
	}
}

func TestEditThenConfirmSaves(t *testing.T) {
	saver := &recordingSaver{}
	c := New(notes{}, saver)

	c.Select(bean)
	if s := c.Edit("flat white"); s.Phase() != Editing || s.Editing != "Bean" {
		t.Fatalf("expected editing Bean, got %#v", s)
	}
	if err := c.ConfirmSave(context.Background()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(saver.saved) != 1 || saver.saved[0].Notes != "flat white" || saver.saved[0].Name != "Bean" {
		t.Fatalf("unexpected saves %#v", saver.saved)
	}
	if s := c.State(); s.Phase() != Idle || s.Active != nil {
		t.Fatalf("expected idle after save, got %#v", s)
	}
}

func TestConfirmFromViewingSavesExistingDraft(t *testing.T) {
	saver := &recordingSaver{}
	c := New(notes{"Bean": "keep"}, saver)
	c.Select(bean)
	if err := c.ConfirmSave(context.Background()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if saver.saved[0].Notes != "keep" {
		t.Fatalf("expected draft saved, got %q", saver.saved[0].Notes)
	}
}

func TestConfirmWithoutSelection(t *testing.T) {
	saver := &recordingSaver{}
	c := New(notes{}, saver)
	if err := c.ConfirmSave(context.Background()); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	if len(saver.saved) != 0 {
		t.Fatal("expected no save")
	}
}

func TestConfirmFailureKeepsDraft(t *testing.T) {
	boom := errors.New("disk full")
	saver := &recordingSaver{err: boom}
	c := New(notes{}, saver)
	c.Select(bean)
	c.Edit("draft")

	if err := c.ConfirmSave(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected save error, got %v", err)
	}
	s := c.State()
	if s.Phase() != Editing || s.NoteDraft != "draft" {
		t.Fatalf("expected editing with draft kept, got %#v", s)
	}
}

func TestCloseDiscardsDraft(t *testing.T) {
	saver := &recordingSaver{}
	c := New(notes{}, saver)
	c.Select(bean)
	c.Edit("throwaway")
	if s := c.Close(); s.Phase() != Idle || s.NoteDraft != "" || s.Active != nil {
		t.Fatalf("expected cleared state, got %#v", s)
	}
	if len(saver.saved) != 0 {
		t.Fatal("close must not save")
	}
}

func TestReselectSameIdentityKeepsDraft(t *testing.T) {
	c := New(notes{"Bean": "saved"}, &recordingSaver{})
	c.Select(bean)
	c.Edit("typing")
	if s := c.Select(bean); s.NoteDraft != "typing" || s.Phase() != Editing {
		t.Fatalf("expected draft kept, got %#v", s)
	}
}

func TestSelectOtherReplacesDraft(t *testing.T) {
	c := New(notes{"Cup": "cup note"}, &recordingSaver{})
	c.Select(bean)
	c.Edit("typing")
	s := c.Select(cup)
	if s.Phase() != Viewing || s.NoteDraft != "cup note" || s.Editing != "" {
		t.Fatalf("expected fresh Cup view, got %#v", s)
	}
}

func TestEditWhileIdleIsIgnored(t *testing.T) {
	c := New(notes{}, &recordingSaver{})
	if s := c.Edit("x"); s.Phase() != Idle || s.NoteDraft != "" {
		t.Fatalf("expected idle, got %#v", s)
	}
}

func TestObserversSeeEveryTransition(t *testing.T) {
	c := New(notes{}, &recordingSaver{})
	var phases []Phase
	c.OnChange(func(s State) { phases = append(phases, s.Phase()) })

	c.Select(bean)
	c.Edit("a")
	_ = c.ConfirmSave(context.Background())

	want := []Phase{Viewing, Editing, Idle}
	if len(phases) != len(want) {
		t.Fatalf("expected %v, got %v", want, phases)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, phases)
		}
	}
}

func TestSelectionReplacedDuringSave(t *testing.T) {
	var c *Controller
	saver := SaverFunc(func(context.Context, poi.SavedEntry) error {
		c.Select(cup)
		return nil
	})
	c = New(notes{}, saver)
	c.Select(bean)
	if err := c.ConfirmSave(context.Background()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if s := c.State(); s.Active == nil || s.Active.Name != "Cup" {
		t.Fatalf("expected newer selection to survive, got %#v", s)
	}
}

func TestStateIsACopy(t *testing.T) {
	c := New(notes{}, &recordingSaver{})
	s := c.Select(bean)
	s.Active.Name = "mutated"
	if c.State().Active.Name != "Bean" {
		t.Fatal("state leaked internal pointer")
	}
}

// Select, type, save, restart, select again: the note comes back.
func TestNoteSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	d, err := store.NewDisk(dir)
	if err != nil {
		t.Fatalf("disk: %v", err)
	}
	repo := favorites.New(d)
	if _, err := repo.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	c := New(repo, SaverFunc(func(ctx context.Context, e poi.SavedEntry) error {
		_, err := repo.Save(ctx, e)
		return err
	}))
	c.Select(bean)
	c.Edit("great espresso")
	if err := c.ConfirmSave(ctx); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	d2, err := store.NewDisk(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	repo2 := favorites.New(d2)
	if _, err := repo2.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	c2 := New(repo2, SaverFunc(func(context.Context, poi.SavedEntry) error { return nil }))
	if s := c2.Select(bean); s.NoteDraft != "great espresso" {
		t.Fatalf("expected note after restart, got %q", s.NoteDraft)
	}
}
