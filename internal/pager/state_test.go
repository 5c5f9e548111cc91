package pager

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		pageSize int
		want     int
	}{
		{name: "explicit", pageSize: 50, want: 50},
		{name: "zero falls back", pageSize: 0, want: DefaultPageSize},
		{name: "negative falls back", pageSize: -3, want: DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.pageSize)
			if s.PageSize() != tt.want {
				t.Errorf("expected page size %d, got %d", tt.want, s.PageSize())
			}
			if s.CurrentPage() != 0 {
				t.Errorf("expected current page 0, got %d", s.CurrentPage())
			}
			if _, known := s.MaxPage(); known {
				t.Error("expected max page to be unknown")
			}
		})
	}
}

func TestDeriveMaxPageIfUnknown(t *testing.T) {
	tests := []struct {
		name    string
		firstID int64
		want    int
	}{
		{name: "id 301", firstID: 301, want: 10},
		{name: "exact multiple", firstID: 300, want: 10},
		{name: "just below multiple", firstID: 299, want: 9},
		{name: "single page", firstID: 29, want: 0},
		{name: "first record", firstID: 1, want: 0},
		{name: "zero id", firstID: 0, want: 0},
		{name: "negative id", firstID: -5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(DefaultPageSize)
			if !s.DeriveMaxPageIfUnknown(tt.firstID) {
				t.Fatal("expected first derivation to report true")
			}
			got, known := s.MaxPage()
			if !known {
				t.Fatal("expected max page to be known")
			}
			if got != tt.want {
				t.Errorf("DeriveMaxPageIfUnknown(%d) = %d, want %d", tt.firstID, got, tt.want)
			}
		})
	}
}

func TestDeriveMaxPageIfUnknown_Idempotent(t *testing.T) {
	s := New(DefaultPageSize)
	s.DeriveMaxPageIfUnknown(301)

	for _, id := range []int64{9000, 1, 301, 0} {
		if s.DeriveMaxPageIfUnknown(id) {
			t.Errorf("DeriveMaxPageIfUnknown(%d) reported a second derivation", id)
		}
		if got, _ := s.MaxPage(); got != 10 {
			t.Errorf("after DeriveMaxPageIfUnknown(%d): max page = %d, want 10", id, got)
		}
	}
}

func TestBoundaries(t *testing.T) {
	s := New(DefaultPageSize)

	// Unknown max page: no forward navigation
	if s.CanGoBack() {
		t.Error("expected CanGoBack false on page 0")
	}
	if s.CanGoForward() {
		t.Error("expected CanGoForward false while max page is unknown")
	}
	if err := s.Advance(); !errors.Is(err, ErrBoundary) {
		t.Errorf("expected ErrBoundary advancing with unknown max page, got %v", err)
	}
	if err := s.Retreat(); !errors.Is(err, ErrBoundary) {
		t.Errorf("expected ErrBoundary retreating from page 0, got %v", err)
	}
	if s.CurrentPage() != 0 {
		t.Errorf("failed navigation moved the page to %d", s.CurrentPage())
	}

	s.DeriveMaxPageIfUnknown(61) // max page 2

	tests := []struct {
		page        int
		wantBack    bool
		wantForward bool
	}{
		{page: 0, wantBack: false, wantForward: true},
		{page: 1, wantBack: true, wantForward: true},
		{page: 2, wantBack: true, wantForward: false},
	}

	for i, tt := range tests {
		if i > 0 {
			if err := s.Advance(); err != nil {
				t.Fatalf("Advance to page %d failed: %v", tt.page, err)
			}
		}
		snap := s.Snapshot()
		if snap.CurrentPage != tt.page {
			t.Fatalf("expected page %d, got %d", tt.page, snap.CurrentPage)
		}
		if snap.CanGoBack != tt.wantBack || snap.CanGoForward != tt.wantForward {
			t.Errorf("page %d: back=%v forward=%v, want back=%v forward=%v",
				tt.page, snap.CanGoBack, snap.CanGoForward, tt.wantBack, tt.wantForward)
		}
	}

	if err := s.Advance(); !errors.Is(err, ErrBoundary) {
		t.Errorf("expected ErrBoundary advancing past max page, got %v", err)
	}
	if s.CurrentPage() != 2 {
		t.Errorf("failed advance moved the page to %d", s.CurrentPage())
	}
}

func TestAdvanceSequence(t *testing.T) {
	s := New(DefaultPageSize)
	s.DeriveMaxPageIfUnknown(301)
	maxPage, _ := s.MaxPage()

	prev := s.CurrentPage()
	for s.CanGoForward() {
		if err := s.Advance(); err != nil {
			t.Fatalf("Advance failed on page %d: %v", prev, err)
		}
		if s.CurrentPage() != prev+1 {
			t.Fatalf("expected page %d, got %d", prev+1, s.CurrentPage())
		}
		if s.CurrentPage() > maxPage {
			t.Fatalf("page %d exceeds max page %d", s.CurrentPage(), maxPage)
		}
		prev = s.CurrentPage()
	}

	if s.CurrentPage() != maxPage {
		t.Errorf("expected to stop on max page %d, got %d", maxPage, s.CurrentPage())
	}
}

func TestRetreatSequence(t *testing.T) {
	s := New(DefaultPageSize)
	s.DeriveMaxPageIfUnknown(301)
	for s.CanGoForward() {
		_ = s.Advance()
	}

	prev := s.CurrentPage()
	for s.CanGoBack() {
		if err := s.Retreat(); err != nil {
			t.Fatalf("Retreat failed on page %d: %v", prev, err)
		}
		if s.CurrentPage() != prev-1 {
			t.Fatalf("expected page %d, got %d", prev-1, s.CurrentPage())
		}
		if s.CurrentPage() < 0 {
			t.Fatalf("page went negative: %d", s.CurrentPage())
		}
		prev = s.CurrentPage()
	}

	if s.CurrentPage() != 0 {
		t.Errorf("expected to stop on page 0, got %d", s.CurrentPage())
	}
}
