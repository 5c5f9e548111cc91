// Package testutil provides a fake tracks API backed by an in-memory SQLite
// database. It pages records the way the real server does: page n holds the
// ids in (max-30*(n+1), max-30*n], newest first, and an empty page is the
// JSON literal null.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/jfmyers9/playlog/pkg/trackapi"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// PageSize is the number of records the server returns per page.
const PageSize = 30

// Server is a fake tracks API.
type Server struct {
	*httptest.Server

	db     *sql.DB
	logger zerolog.Logger

	mu       sync.Mutex
	status   int
	requests []int
}

// NewServer starts a fake tracks API with an empty music table. The server
// and database are closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	// One connection keeps a single in-memory database
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE IF NOT EXISTS music (
			id INTEGER PRIMARY KEY,
			artist TEXT NOT NULL,
			album TEXT NOT NULL,
			name TEXT NOT NULL,
			uri TEXT NOT NULL DEFAULT '',
			add_time TEXT NOT NULL DEFAULT '',
			played_at TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		t.Fatalf("failed to create schema: %v", err)
	}

	s := &Server{
		db:     db,
		logger: zerolog.New(zerolog.NewTestWriter(t)).With().Str("component", "fake-api").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tracks", s.handleTracks)
	s.Server = httptest.NewServer(mux)

	t.Cleanup(func() {
		s.Close()
		_ = db.Close()
	})

	return s
}

// BaseURL returns the API base URL to configure a trackapi.Client with.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// Insert stores tracks as given, ids included.
func (s *Server) Insert(ctx context.Context, tracks ...trackapi.Track) error {
	query := `
		INSERT INTO music (id, artist, album, name, uri, add_time, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for _, track := range tracks {
		if _, err := s.db.ExecContext(ctx, query,
			track.ID,
			track.Artist,
			track.Album,
			track.Name,
			track.URI,
			track.AddedAt,
			track.PlayedAt,
		); err != nil {
			return fmt.Errorf("failed to insert track %d: %w", track.ID, err)
		}
	}
	return nil
}

// Seed inserts tracks with ids 1..n. Artist, album and name embed the id.
func (s *Server) Seed(t testing.TB, n int) {
	t.Helper()

	tracks := make([]trackapi.Track, 0, n)
	for id := 1; id <= n; id++ {
		tracks = append(tracks, trackapi.Track{
			ID:       int64(id),
			Artist:   fmt.Sprintf("Artist %d", id),
			Album:    fmt.Sprintf("Album %d", id),
			Name:     fmt.Sprintf("Track %d", id),
			PlayedAt: fmt.Sprintf("2019-03-01T10:%02d:%02dZ", (id/60)%60, id%60),
		})
	}
	if err := s.Insert(context.Background(), tracks...); err != nil {
		t.Fatalf("failed to seed tracks: %v", err)
	}
}

// FailWith makes every following request answer with status. Zero restores
// normal responses.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Requests returns the page numbers requested so far, in arrival order.
func (s *Server) Requests() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.requests...)
}

func (s *Server) handleTracks(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, page)
	status := s.status
	s.mu.Unlock()

	if status != 0 {
		s.logger.Debug().Int("page", page).Int("status", status).Msg("Failing request")
		http.Error(w, http.StatusText(status), status)
		return
	}

	tracks, err := s.page(r.Context(), page)
	if err != nil {
		s.logger.Error().Err(err).Int("page", page).Msg("Failed to query page")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	body, err := json.Marshal(tracks)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.logger.Debug().Int("page", page).Int("tracks", len(tracks)).Msg("Serving page")
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// page returns nil for an empty page so it encodes as null.
func (s *Server) page(ctx context.Context, page int) ([]trackapi.Track, error) {
	var maxID sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT MAX(id) FROM music").Scan(&maxID); err != nil {
		return nil, fmt.Errorf("failed to query max id: %w", err)
	}

	minPageID := maxID.Int64 - int64(PageSize*(page+1))
	maxPageID := minPageID + PageSize

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, artist, album, name, uri, add_time, played_at
		FROM music
		WHERE id > ? AND id <= ?
		ORDER BY id DESC
	`, minPageID, maxPageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tracks []trackapi.Track
	for rows.Next() {
		var track trackapi.Track
		if err := rows.Scan(
			&track.ID,
			&track.Artist,
			&track.Album,
			&track.Name,
			&track.URI,
			&track.AddedAt,
			&track.PlayedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, track)
	}

	return tracks, rows.Err()
}
