// Package navigator ties page state, fetching and rendering together into
// previous/next navigation over the track collection.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jfmyers9/playlog/internal/pager"
	"github.com/jfmyers9/playlog/pkg/trackapi"
	"github.com/rs/zerolog"
)

// Fetcher retrieves one page of tracks.
type Fetcher interface {
	FetchPage(ctx context.Context, page int) ([]trackapi.Track, error)
}

// Renderer replaces the displayed track rows.
type Renderer interface {
	Render(tracks []trackapi.Track) error
}

// View is the navigation surface the controller keeps in sync.
type View interface {
	// SetNavigation enables or disables the previous and next controls.
	SetNavigation(canGoBack, canGoForward bool)
	// ShowPage updates the page indicator.
	ShowPage(state pager.Snapshot)
	// ScrollToTop moves the table viewport to its first row.
	ScrollToTop()
	// ShowError displays a fetch failure; nil clears the indicator.
	ShowError(err error)
}

// Phase is the state of the current navigation cycle. A cycle runs
// Requesting and then settles in Succeeded or Failed, which are idle
// phases that keep the outcome of the latest cycle.
type Phase int

const (
	// PhaseIdle is the phase before the first request and after a
	// request is abandoned by cancellation.
	PhaseIdle Phase = iota
	// PhaseRequesting means the latest request has not completed.
	PhaseRequesting
	// PhaseSucceeded means the latest page was fetched and rendered.
	PhaseSucceeded
	// PhaseFailed means the latest fetch or render failed.
	PhaseFailed
)

// String returns a human-readable representation of the Phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRequesting:
		return "requesting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Config holds controller configuration
type Config struct {
	PageSize       int            // Records per page (defaults to pager.DefaultPageSize)
	RequestTimeout time.Duration  // Per-request timeout; zero disables
	Dispatch       func(func())   // Runs completions on the UI goroutine; nil runs them inline
	Logger         zerolog.Logger // Logger for navigation events
}

// Controller drives page navigation.
//
// Intents move the page state immediately and issue a fetch for the new
// page. Each fetch supersedes the previous one: the older request is
// cancelled and its completion, if it still arrives, is discarded. Only
// the latest request's response is ever rendered.
type Controller struct {
	fetcher  Fetcher
	renderer Renderer
	view     View
	dispatch func(func())
	timeout  time.Duration
	logger   zerolog.Logger

	// mu guards everything below
	mu      sync.Mutex
	state   *pager.State
	phase   Phase
	seq     uint64
	cancel  context.CancelFunc
	baseCtx context.Context
	lastErr error

	inflight sync.WaitGroup
}

// New creates a controller with a fresh page state on page 0.
func New(cfg Config, fetcher Fetcher, renderer Renderer, view View) *Controller {
	dispatch := cfg.Dispatch
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}

	return &Controller{
		fetcher:  fetcher,
		renderer: renderer,
		view:     view,
		dispatch: dispatch,
		timeout:  cfg.RequestTimeout,
		logger:   cfg.Logger.With().Str("component", "navigator").Logger(),
		state:    pager.New(cfg.PageSize),
		baseCtx:  context.Background(),
	}
}

// Start performs the initial load of page 0. Requests issued later are
// derived from ctx and stop when it is cancelled.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.baseCtx = ctx
	c.logger.Info().Msg("Loading first page")
	c.requestLocked()
}

// Next moves to the following page. It returns pager.ErrBoundary and does
// nothing when no following page is known.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.state.Advance(); err != nil {
		c.logger.Debug().Int("page", c.state.CurrentPage()).Msg("Ignoring next past last page")
		return err
	}
	c.requestLocked()
	return nil
}

// Previous moves to the preceding page. It returns pager.ErrBoundary and
// does nothing on page 0.
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.state.Retreat(); err != nil {
		c.logger.Debug().Msg("Ignoring previous before first page")
		return err
	}
	c.requestLocked()
	return nil
}

// Reload requests the current page again.
func (c *Controller) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requestLocked()
}

// State returns a copy of the page state.
func (c *Controller) State() pager.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Snapshot()
}

// Phase returns the current navigation phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// LastError returns the error of the most recent completed fetch, or nil
// if it succeeded.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Wait blocks until every issued fetch has completed and its completion
// has been handed to the dispatcher.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Close cancels the in-flight fetch, if any. Its completion is discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	if c.phase == PhaseRequesting {
		c.phase = PhaseIdle
	}
	c.mu.Unlock()

	c.inflight.Wait()
}

// requestLocked issues a fetch for the current page, superseding any
// request still in flight. Must be called with c.mu held.
func (c *Controller) requestLocked() {
	if c.cancel != nil {
		c.cancel()
	}

	c.seq++
	seq := c.seq
	page := c.state.CurrentPage()

	var ctx context.Context
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(c.baseCtx, c.timeout)
	} else {
		ctx, cancel = context.WithCancel(c.baseCtx)
	}
	c.cancel = cancel
	c.phase = PhaseRequesting

	c.logger.Debug().Int("page", page).Uint64("seq", seq).Msg("Requesting page")

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		defer cancel()

		tracks, err := c.fetcher.FetchPage(ctx, page)
		c.dispatch(func() {
			c.complete(seq, page, tracks, err)
		})
	}()
}

// complete applies a finished fetch if it belongs to the latest request.
func (c *Controller) complete(seq uint64, page int, tracks []trackapi.Track, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.Debug().
			Int("page", page).
			Uint64("seq", seq).
			Uint64("latest", c.seq).
			Msg("Discarding superseded response")
		return
	}

	c.cancel = nil

	if err != nil {
		c.fail(page, err)
		return
	}

	// Derivation runs on every successful fetch and only takes effect once
	if len(tracks) > 0 && c.state.DeriveMaxPageIfUnknown(tracks[0].ID) {
		maxPage, _ := c.state.MaxPage()
		c.logger.Info().
			Int64("first_id", tracks[0].ID).
			Int("max_page", maxPage).
			Msg("Derived last page")
	}

	if err := c.renderer.Render(tracks); err != nil {
		c.fail(page, fmt.Errorf("failed to render page %d: %w", page, err))
		return
	}

	c.phase = PhaseSucceeded
	c.lastErr = nil
	c.syncNavigationLocked()
	c.view.ScrollToTop()
	c.view.ShowError(nil)

	c.logger.Info().
		Int("page", page).
		Int("tracks", len(tracks)).
		Msg("Rendered page")
}

// fail records a failed cycle. Page state and rendered rows are left as
// they were; the controls and indicator still follow the page state, which
// moved on the intent. A cancelled request is abandoned rather than failed.
// Must be called with c.mu held.
func (c *Controller) fail(page int, err error) {
	if errors.Is(err, context.Canceled) {
		c.logger.Debug().Int("page", page).Msg("Request cancelled")
		c.phase = PhaseIdle
		return
	}

	c.logger.Warn().Err(err).Int("page", page).Msg("Failed to load page")
	c.phase = PhaseFailed
	c.lastErr = err
	c.syncNavigationLocked()
	c.view.ShowError(err)
}

// syncNavigationLocked applies the page state to the controls and the page
// indicator. Must be called with c.mu held.
func (c *Controller) syncNavigationLocked() {
	snapshot := c.state.Snapshot()
	c.view.SetNavigation(snapshot.CanGoBack, snapshot.CanGoForward)
	c.view.ShowPage(snapshot)
}
