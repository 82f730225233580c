package handler

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/booking-directory/internal/repository"
)

// Handler tests drive real repositories against an in-memory SQLite
// database through a real Echo router, so routing, binding, persistence and
// response shaping are all exercised end to end.
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

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	for _, stmt := range testSchema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	t.Cleanup(func() { db.Close() })

	venueRepo := repository.NewVenueRepo(db)
	artistRepo := repository.NewArtistRepo(db)
	showRepo := repository.NewShowRepo(db)

	home := &HomeHandler{VenueRepo: venueRepo, ArtistRepo: artistRepo, ShowRepo: showRepo}
	venues := &VenueHandler{VenueRepo: venueRepo, ShowRepo: showRepo}
	artists := &ArtistHandler{ArtistRepo: artistRepo, ShowRepo: showRepo}
	shows := &ShowHandler{ShowRepo: showRepo}

	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.GET("/", home.Index)

	e.GET("/venues", venues.ListVenues)
	e.POST("/venues/search", venues.SearchVenues)
	e.GET("/venues/create", venues.NewVenueForm)
	e.POST("/venues/create", venues.CreateVenue)
	e.GET("/venues/:id", venues.GetVenue)
	e.GET("/venues/:id/edit", venues.EditVenueForm)
	e.POST("/venues/:id/edit", venues.UpdateVenue)
	e.POST("/venues/:id/delete", venues.DeleteVenue)

	e.GET("/artists", artists.ListArtists)
	e.POST("/artists/search", artists.SearchArtists)
	e.GET("/artists/create", artists.NewArtistForm)
	e.POST("/artists/create", artists.CreateArtist)
	e.GET("/artists/:id", artists.GetArtist)
	e.GET("/artists/:id/edit", artists.EditArtistForm)
	e.POST("/artists/:id/edit", artists.UpdateArtist)

	e.GET("/shows", shows.ListShows)
	e.GET("/shows/create", shows.NewShowForm)
	e.POST("/shows/create", shows.CreateShow)

	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doForm(t *testing.T, e *echo.Echo, path, form string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
