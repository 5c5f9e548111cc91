package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/playlog/internal/navigator"
	"github.com/jfmyers9/playlog/internal/pager"
	"github.com/jfmyers9/playlog/pkg/trackapi"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
)

var _ navigator.View = (*App)(nil)

type fakeNavigator struct {
	next, previous, reload int
	err                    error
}

func (n *fakeNavigator) Next() error {
	n.next++
	return n.err
}

func (n *fakeNavigator) Previous() error {
	n.previous++
	return n.err
}

func (n *fakeNavigator) Reload() {
	n.reload++
}

func newTestApp(t *testing.T) (*App, *fakeNavigator) {
	t.Helper()
	a := New(zerolog.New(zerolog.NewTestWriter(t)))
	nav := &fakeNavigator{}
	a.SetNavigator(nav)
	return a, nav
}

func TestNew_ControlsStartDisabled(t *testing.T) {
	a, _ := newTestApp(t)

	if !a.prev.IsDisabled() || !a.next.IsDisabled() {
		t.Error("expected both controls disabled before the first page loads")
	}
	if a.table.GetRowCount() != 1 {
		t.Errorf("expected only the header row, got %d rows", a.table.GetRowCount())
	}
}

func TestHandleKeyEvent(t *testing.T) {
	tests := []struct {
		name         string
		event        *tcell.EventKey
		wantNext     int
		wantPrevious int
		wantReload   int
		consumed     bool
	}{
		{name: "n", event: tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), wantNext: 1, consumed: true},
		{name: "right arrow", event: tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), wantNext: 1, consumed: true},
		{name: "p", event: tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), wantPrevious: 1, consumed: true},
		{name: "left arrow", event: tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), wantPrevious: 1, consumed: true},
		{name: "r", event: tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), wantReload: 1, consumed: true},
		{name: "q", event: tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), consumed: true},
		{name: "unbound", event: tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)},
		{name: "down arrow passes to table", event: tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, nav := newTestApp(t)

			got := a.handleKeyEvent(tt.event)
			if tt.consumed && got != nil {
				t.Error("expected event to be consumed")
			}
			if !tt.consumed && got != tt.event {
				t.Error("expected event to pass through")
			}
			if nav.next != tt.wantNext || nav.previous != tt.wantPrevious || nav.reload != tt.wantReload {
				t.Errorf("got next=%d previous=%d reload=%d", nav.next, nav.previous, nav.reload)
			}
		})
	}
}

func TestHandleKeyEvent_BoundaryIgnored(t *testing.T) {
	a, nav := newTestApp(t)
	nav.err = pager.ErrBoundary

	if got := a.handleKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone)); got != nil {
		t.Error("expected event to be consumed at the boundary")
	}
	if nav.next != 1 {
		t.Errorf("expected the intent to reach the navigator, got %d", nav.next)
	}
}

func TestButtons(t *testing.T) {
	a, nav := newTestApp(t)
	enter := tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	noFocus := func(tview.Primitive) {}

	// Disabled buttons ignore input
	a.next.InputHandler()(enter, noFocus)
	a.prev.InputHandler()(enter, noFocus)
	if nav.next != 0 || nav.previous != 0 {
		t.Fatal("disabled buttons fired")
	}

	a.SetNavigation(true, true)
	a.next.InputHandler()(enter, noFocus)
	a.prev.InputHandler()(enter, noFocus)
	if nav.next != 1 || nav.previous != 1 {
		t.Errorf("expected one intent per button, got next=%d previous=%d", nav.next, nav.previous)
	}
}

func TestSetNavigation(t *testing.T) {
	tests := []struct {
		back, forward bool
	}{
		{back: false, forward: true},
		{back: true, forward: true},
		{back: true, forward: false},
		{back: false, forward: false},
	}

	a, _ := newTestApp(t)
	for _, tt := range tests {
		a.SetNavigation(tt.back, tt.forward)
		if a.prev.IsDisabled() == tt.back || a.next.IsDisabled() == tt.forward {
			t.Errorf("SetNavigation(%v, %v): prev disabled=%v next disabled=%v",
				tt.back, tt.forward, a.prev.IsDisabled(), a.next.IsDisabled())
		}
	}
}

func TestShowPage(t *testing.T) {
	tests := []struct {
		name  string
		state pager.Snapshot
		want  string
	}{
		{name: "unknown last page", state: pager.Snapshot{CurrentPage: 0}, want: "Page 1"},
		{name: "first of eleven", state: pager.Snapshot{CurrentPage: 0, MaxPage: 10, MaxPageKnown: true}, want: "Page 1 of 11"},
		{name: "last page", state: pager.Snapshot{CurrentPage: 10, MaxPage: 10, MaxPageKnown: true}, want: "Page 11 of 11"},
	}

	a, _ := newTestApp(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a.ShowPage(tt.state)
			if got := a.pageInfo.GetText(true); got != tt.want {
				t.Errorf("page indicator = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShowError(t *testing.T) {
	a, _ := newTestApp(t)
	help := a.status.GetText(true)

	err := &trackapi.Error{Kind: trackapi.KindHTTPStatus, Page: 3, StatusCode: 500}
	a.ShowError(err)
	if got := a.status.GetText(true); !strings.Contains(got, err.Error()) {
		t.Errorf("expected status to show %q, got %q", err.Error(), got)
	}

	a.ShowError(errors.New("[red]tag[-] in message"))
	if got := a.status.GetText(false); !strings.Contains(got, tview.Escape("[red]tag[-] in message")) {
		t.Errorf("expected style tags in the message to be escaped, got %q", got)
	}

	a.ShowError(nil)
	if got := a.status.GetText(true); got != help {
		t.Errorf("expected help text after clearing, got %q", got)
	}
}

func TestRenderer_BoundToTable(t *testing.T) {
	a, _ := newTestApp(t)

	tracks := []trackapi.Track{
		{ID: 2, Artist: "Can", Album: "Tago Mago", Name: "Mushroom", PlayedAt: "2019-02-01T08:06:00Z"},
		{ID: 1, Artist: "Can", Album: "Tago Mago", Name: "Paperhouse", PlayedAt: "2019-02-01T08:00:00Z"},
	}
	if err := a.Renderer().Render(tracks); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if a.table.GetRowCount() != 3 {
		t.Errorf("expected header + 2 rows, got %d", a.table.GetRowCount())
	}
	a.ScrollToTop()
}
