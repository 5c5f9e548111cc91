package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/playlog/internal/pager"
	"github.com/jfmyers9/playlog/internal/render"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
)

const helpText = "[gray]q:quit  n/→:next  p/←:previous  r:reload[-]"

// Navigator receives the user's navigation intents.
type Navigator interface {
	Next() error
	Previous() error
	Reload()
}

// App is the terminal track browser.
//
// It implements the navigator's View; those methods touch widgets and must
// run on the UI goroutine, which Dispatch guarantees.
type App struct {
	app      *tview.Application
	table    *tview.Table
	prev     *tview.Button
	next     *tview.Button
	pageInfo *tview.TextView
	status   *tview.TextView

	renderer *render.Table
	nav      Navigator
	logger   zerolog.Logger
}

// New creates the browser with an empty table and both controls disabled.
func New(logger zerolog.Logger) *App {
	a := &App{
		app:    tview.NewApplication(),
		logger: logger.With().Str("component", "tui").Logger(),
	}
	a.setupUI()
	return a
}

// SetNavigator sets the receiver of key presses and button clicks.
func (a *App) SetNavigator(nav Navigator) {
	a.nav = nav
}

// Renderer returns the renderer bound to the track table.
func (a *App) Renderer() *render.Table {
	return a.renderer
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	// Track table (mount point for rendered rows)
	a.table = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false)
	a.table.SetBorder(true).
		SetTitle(" Tracks ").
		SetTitleAlign(tview.AlignLeft)
	a.renderer = render.NewTable(a.table)

	// Navigation controls
	a.prev = tview.NewButton("Previous").
		SetSelectedFunc(func() { a.previous() }).
		SetDisabled(true)
	a.next = tview.NewButton("Next").
		SetSelectedFunc(func() { a.forward() }).
		SetDisabled(true)

	// Page indicator
	a.pageInfo = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	// Status bar (error indicator)
	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText(helpText)

	// Create layout
	// Top: track table (takes most space)
	// Middle: Previous | page indicator | Next
	// Footer: status bar
	controls := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.prev, 12, 0, false).
		AddItem(a.pageInfo, 0, 1, false).
		AddItem(a.next, 12, 0, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.table, 0, 1, true).
		AddItem(controls, 1, 0, false).
		AddItem(a.status, 1, 0, false)

	// Handle keyboard input
	a.app.SetInputCapture(a.handleKeyEvent)
	a.app.EnableMouse(true)

	a.app.SetRoot(flex, true)
}

// handleKeyEvent processes keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyRight:
		a.forward()
		return nil
	case tcell.KeyLeft:
		a.previous()
		return nil
	}

	switch event.Rune() {
	case 'q', 'Q':
		a.app.Stop()
		return nil
	case 'n', 'N':
		a.forward()
		return nil
	case 'p', 'P':
		a.previous()
		return nil
	case 'r', 'R':
		if a.nav != nil {
			a.nav.Reload()
		}
		return nil
	}
	return event
}

func (a *App) forward() {
	if a.nav == nil {
		return
	}
	a.logIntent("next", a.nav.Next())
}

func (a *App) previous() {
	if a.nav == nil {
		return
	}
	a.logIntent("previous", a.nav.Previous())
}

func (a *App) logIntent(intent string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, pager.ErrBoundary) {
		a.logger.Debug().Str("intent", intent).Msg("Control disabled at page boundary")
		return
	}
	a.logger.Warn().Err(err).Str("intent", intent).Msg("Navigation failed")
}

// Dispatch runs f on the UI goroutine and redraws. It does not wait for f,
// so completions arriving after the application stopped never block.
func (a *App) Dispatch(f func()) {
	go a.app.QueueUpdateDraw(f)
}

// SetNavigation enables or disables the Previous and Next controls.
func (a *App) SetNavigation(canGoBack, canGoForward bool) {
	a.prev.SetDisabled(!canGoBack)
	a.next.SetDisabled(!canGoForward)
}

// ShowPage updates the page indicator. Pages are shown one-based.
func (a *App) ShowPage(state pager.Snapshot) {
	a.pageInfo.SetText(pageText(state))
}

// ScrollToTop moves the table viewport to the first row.
func (a *App) ScrollToTop() {
	a.renderer.ScrollToTop()
}

// ShowError shows err in the status bar; nil restores the key help.
func (a *App) ShowError(err error) {
	if err == nil {
		a.status.SetText(helpText)
		return
	}
	a.status.SetText(fmt.Sprintf("[red]%s[-]  [gray](r to retry)[-]", tview.Escape(err.Error())))
}

func pageText(state pager.Snapshot) string {
	if !state.MaxPageKnown {
		return fmt.Sprintf("Page %d", state.CurrentPage+1)
	}
	return fmt.Sprintf("Page %d of %d", state.CurrentPage+1, state.MaxPage+1)
}

// Run starts the application and blocks until it is stopped or ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		a.app.Stop()
	}()

	// Run application
	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// Stop stops the application, causing Run to return.
func (a *App) Stop() {
	a.app.Stop()
}
