package pager

import (
	"errors"
)

// DefaultPageSize matches the number of records the server returns per page.
const DefaultPageSize = 30

// ErrBoundary is returned when navigation would move past a known edge.
var ErrBoundary = errors.New("pager: navigation past page boundary")

// Snapshot is a point-in-time copy of a State.
type Snapshot struct {
	CurrentPage  int
	MaxPage      int  // Meaningful only when MaxPageKnown
	MaxPageKnown bool
	CanGoBack    bool
	CanGoForward bool
}

// State holds the current page index and the lazily derived last page.
//
// State is not safe for concurrent use; callers serialize access.
type State struct {
	pageSize int
	current  int
	max      int
	maxKnown bool
}

// New creates a State positioned on page 0 with an unknown last page.
// A non-positive pageSize falls back to DefaultPageSize.
func New(pageSize int) *State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &State{pageSize: pageSize}
}

// PageSize returns the page size used for derivation.
func (s *State) PageSize() int {
	return s.pageSize
}

// CurrentPage returns the zero-based current page index.
func (s *State) CurrentPage() int {
	return s.current
}

// MaxPage returns the last valid page index and whether it is known yet.
func (s *State) MaxPage() (int, bool) {
	return s.max, s.maxKnown
}

// CanGoBack reports whether a previous page exists.
func (s *State) CanGoBack() bool {
	return s.current > 0
}

// CanGoForward reports whether a next page is known to exist.
func (s *State) CanGoForward() bool {
	return s.maxKnown && s.current < s.max
}

// Advance moves to the next page.
func (s *State) Advance() error {
	if !s.CanGoForward() {
		return ErrBoundary
	}
	s.current++
	return nil
}

// Retreat moves to the previous page.
func (s *State) Retreat() error {
	if !s.CanGoBack() {
		return ErrBoundary
	}
	s.current--
	return nil
}

// DeriveMaxPageIfUnknown sets the last page from the id of the newest
// record: floor(firstRecordID / pageSize). It only has an effect the first
// time it is called; it reports whether it derived the value.
//
// The result is only correct when ids are dense, assigned in increasing
// creation order, and firstRecordID comes from page 0.
func (s *State) DeriveMaxPageIfUnknown(firstRecordID int64) bool {
	if s.maxKnown {
		return false
	}
	if firstRecordID < 0 {
		firstRecordID = 0
	}
	s.max = int(firstRecordID / int64(s.pageSize))
	s.maxKnown = true
	return true
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		CurrentPage:  s.current,
		MaxPage:      s.max,
		MaxPageKnown: s.maxKnown,
		CanGoBack:    s.CanGoBack(),
		CanGoForward: s.CanGoForward(),
	}
}
