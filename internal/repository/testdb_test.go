package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// Tests run against an in-memory SQLite database. Every query in this
// package sticks to portable SQL, so the same statements that hit MySQL in
// production run here unchanged. The pool is capped at one connection
// because each ":memory:" connection is its own database.
var testSchema = []string{
	`CREATE TABLE venues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		address TEXT NOT NULL,
		phone TEXT NOT NULL,
		image_link TEXT NOT NULL DEFAULT '',
		facebook_link TEXT NOT NULL DEFAULT '',
		website_link TEXT NOT NULL DEFAULT '',
		seeking_talent INTEGER NOT NULL DEFAULT 0,
		seeking_description TEXT,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE artists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		phone TEXT NOT NULL,
		image_link TEXT NOT NULL DEFAULT '',
		facebook_link TEXT NOT NULL DEFAULT '',
		website_link TEXT NOT NULL DEFAULT '',
		seeking_venue INTEGER NOT NULL DEFAULT 0,
		seeking_description TEXT,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE shows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		artist_id INTEGER NOT NULL,
		venue_id INTEGER NOT NULL,
		start_time DATETIME NOT NULL
	)`,
	`CREATE TABLE venue_genres (
		venue_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (venue_id, position)
	)`,
	`CREATE TABLE artist_genres (
		artist_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (artist_id, position)
	)`,
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	for _, stmt := range testSchema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedVenue(t *testing.T, repo *VenueRepo, name, city, state string, genres []string) *Venue {
	t.Helper()
	v := &Venue{
		Name:    name,
		City:    city,
		State:   state,
		Address: "123 Main St",
		Phone:   "123-123-1234",
		Genres:  genres,
	}
	if err := repo.Create(context.Background(), v); err != nil {
		t.Fatalf("seed venue %q: %v", name, err)
	}
	return v
}

func seedArtist(t *testing.T, repo *ArtistRepo, name, city, state string, genres []string) *Artist {
	t.Helper()
	a := &Artist{
		Name:   name,
		City:   city,
		State:  state,
		Phone:  "321-321-4321",
		Genres: genres,
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("seed artist %q: %v", name, err)
	}
	return a
}

func seedShow(t *testing.T, repo *ShowRepo, artistID, venueID uint64, at time.Time) *Show {
	t.Helper()
	s := &Show{ArtistID: artistID, VenueID: venueID, StartTime: at}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("seed show: %v", err)
	}
	return s
}

// dt builds whole-second UTC instants so stored and bound values compare
// consistently.
func dt(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}
