package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gunsNPetalsJSON = `{
	"name": "Guns N Petals",
	"city": "San Francisco",
	"state": "CA",
	"phone": "326-123-5000",
	"image_link": "https://example.com/gnp.jpg",
	"genres": ["Rock n Roll"],
	"facebook_link": "https://facebook.com/gnp",
	"website_link": "https://gunsnpetalsband.com",
	"seeking_venue": true,
	"seeking_description": "Looking for shows to perform"
}`

func TestCreateArtistAndGetDetail(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/artists/create", gunsNPetalsJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID     uint64   `json:"id"`
		Name   string   `json:"name"`
		Genres []string `json:"genres"`
	}
	decode(t, rec, &created)
	require.NotZero(t, created.ID)
	assert.Equal(t, "Guns N Petals", created.Name)

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/artists/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		Name               string   `json:"name"`
		Genres             []string `json:"genres"`
		SeekingVenue       bool     `json:"seeking_venue"`
		SeekingDescription *string  `json:"seeking_description"`
		PastShows          []any    `json:"past_shows"`
		UpcomingShows      []any    `json:"upcoming_shows"`
		PastShowsCount     int      `json:"past_shows_count"`
		UpcomingShowsCount int      `json:"upcoming_shows_count"`
	}
	decode(t, rec, &detail)
	assert.Equal(t, "Guns N Petals", detail.Name)
	assert.Equal(t, []string{"Rock n Roll"}, detail.Genres)
	assert.True(t, detail.SeekingVenue)
	require.NotNil(t, detail.SeekingDescription)
	assert.Empty(t, detail.PastShows)
	assert.Empty(t, detail.UpcomingShows)
	assert.Zero(t, detail.PastShowsCount)
	assert.Zero(t, detail.UpcomingShowsCount)
}

func TestCreateArtistValidation(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/artists/create",
		`{"name":"","city":"SF","state":"CA","phone":"1","genres":["Jazz"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"name is required"}`, rec.Body.String())

	rec = doJSON(t, e, http.MethodPost, "/artists/create",
		`{"name":"x","city":"SF","state":"CA","phone":"1","genres":["Dubstep"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"unknown genre"}`, rec.Body.String())
}

func TestListArtists(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/artists", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"artists":[]}`, rec.Body.String())

	rec = doJSON(t, e, http.MethodPost, "/artists/create", gunsNPetalsJSON)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/artists", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Artists []struct {
			ID   uint64 `json:"id"`
			Name string `json:"name"`
		} `json:"artists"`
	}
	decode(t, rec, &payload)
	require.Len(t, payload.Artists, 1)
	assert.Equal(t, "Guns N Petals", payload.Artists[0].Name)
}

func TestSearchArtists(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/artists/create", gunsNPetalsJSON)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doForm(t, e, "/artists/search", "search_term=petals")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Count      int    `json:"count"`
		SearchTerm string `json:"search_term"`
		Data       []struct {
			Name             string `json:"name"`
			NumUpcomingShows int    `json:"num_upcoming_shows"`
		} `json:"data"`
	}
	decode(t, rec, &payload)
	assert.Equal(t, 1, payload.Count)
	assert.Equal(t, "petals", payload.SearchTerm)
	require.Len(t, payload.Data, 1)
	assert.Equal(t, 0, payload.Data[0].NumUpcomingShows)
}

func TestGetArtistMissing(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/artists/404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateArtist(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/artists/create", gunsNPetalsJSON)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID uint64 `json:"id"`
	}
	decode(t, rec, &created)

	update := `{"name":"Guns N Petals","city":"Los Angeles","state":"CA","phone":"326-123-5000","genres":["Rock n Roll","Blues"]}`
	rec = doJSON(t, e, http.MethodPost, fmt.Sprintf("/artists/%d/edit", created.ID), update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated struct {
		City   string   `json:"city"`
		Genres []string `json:"genres"`
	}
	decode(t, rec, &updated)
	assert.Equal(t, "Los Angeles", updated.City)
	assert.Equal(t, []string{"Rock n Roll", "Blues"}, updated.Genres)
}

func TestUpdateArtistMissing(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/artists/77/edit",
		`{"name":"x","city":"SF","state":"CA","phone":"1","genres":["Jazz"]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
