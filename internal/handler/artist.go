package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booking-directory/internal/listing"
	"github.com/iliyamo/booking-directory/internal/queue"
	"github.com/iliyamo/booking-directory/internal/repository"
	queue_publisher "github.com/iliyamo/booking-directory/internal/service"
)

// ArtistHandler aggregates the repositories the artist endpoints need.
type ArtistHandler struct {
	ArtistRepo *repository.ArtistRepo
	ShowRepo   *repository.ShowRepo
}

// artistForm binds the create/edit submission for artists.
type artistForm struct {
	Name               string   `json:"name" form:"name"`
	City               string   `json:"city" form:"city"`
	State              string   `json:"state" form:"state"`
	Phone              string   `json:"phone" form:"phone"`
	ImageLink          string   `json:"image_link" form:"image_link"`
	Genres             []string `json:"genres" form:"genres"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
	WebsiteLink        string   `json:"website_link" form:"website_link"`
	SeekingVenue       bool     `json:"seeking_venue" form:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
}

func (f *artistForm) validate() string {
	f.Name = strings.TrimSpace(f.Name)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Phone = strings.TrimSpace(f.Phone)
	switch {
	case f.Name == "":
		return "name is required"
	case f.City == "":
		return "city is required"
	case f.State == "":
		return "state is required"
	case f.Phone == "":
		return "phone is required"
	case !repository.ValidState(f.State):
		return "unknown state code"
	case len(f.Genres) == 0:
		return "at least one genre is required"
	}
	if err := repository.ValidateGenres(f.Genres); err != nil {
		return "unknown genre"
	}
	return ""
}

func (f *artistForm) toArtist(id uint64) *repository.Artist {
	return &repository.Artist{
		ID:                 id,
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		Genres:             f.Genres,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: optionalText(f.SeekingDescription),
	}
}

// artistRecord is the JSON shape of a single artist without its shows.
type artistRecord struct {
	ID                 uint64   `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	WebsiteLink        string   `json:"website_link"`
	FacebookLink       string   `json:"facebook_link"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription *string  `json:"seeking_description"`
	ImageLink          string   `json:"image_link"`
}

func artistRecordFrom(a *repository.Artist) artistRecord {
	return artistRecord{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             nonNil(a.Genres),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		WebsiteLink:        a.WebsiteLink,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: textPtr(a.SeekingDescription),
		ImageLink:          a.ImageLink,
	}
}

type artistDetail struct {
	artistRecord
	PastShows          []repository.ArtistShowRow `json:"past_shows"`
	UpcomingShows      []repository.ArtistShowRow `json:"upcoming_shows"`
	PastShowsCount     int                        `json:"past_shows_count"`
	UpcomingShowsCount int                        `json:"upcoming_shows_count"`
}

// ListArtists handles GET /artists and returns the flat id/name listing
// ordered by id.
func (h *ArtistHandler) ListArtists(c echo.Context) error {
	rows, err := h.ArtistRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rows == nil {
		rows = []repository.ArtistRow{}
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": rows})
}

// SearchArtists handles POST /artists/search with the same contract as the
// venue search: case-insensitive name containment, zero-show matches kept.
func (h *ArtistHandler) SearchArtists(c echo.Context) error {
	var body struct {
		SearchTerm string `json:"search_term" form:"search_term"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	now := time.Now().UTC()
	rows, err := h.ArtistRepo.SearchByName(c.Request().Context(), body.SearchTerm, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rows == nil {
		rows = []repository.SearchRow{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":       len(rows),
		"data":        rows,
		"search_term": body.SearchTerm,
	})
}

// GetArtist handles GET /artists/:id. Artists without shows render with
// empty lists and zero counts.
func (h *ArtistHandler) GetArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	a, err := h.ArtistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	shows, err := h.ShowRepo.ListByArtist(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	now := time.Now().UTC()
	past, upcoming := listing.Partition(shows, now)
	return c.JSON(http.StatusOK, artistDetail{
		artistRecord:       artistRecordFrom(a),
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	})
}

// NewArtistForm handles GET /artists/create.
func (h *ArtistHandler) NewArtistForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"fields": []string{
			"name", "city", "state", "phone", "image_link",
			"genres", "facebook_link", "website_link", "seeking_venue", "seeking_description",
		},
		"genres": repository.Genres,
		"states": repository.States,
	})
}

// CreateArtist handles POST /artists/create.
func (h *ArtistHandler) CreateArtist(c echo.Context) error {
	var form artistForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := form.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	a := form.toArtist(0)
	if err := h.ArtistRepo.Create(c.Request().Context(), a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "artist " + form.Name + " could not be listed"})
	}
	queue_publisher.PublishListingActivity(c.Request().Context(), queue.ListingActivityEvent{
		Action:     queue.ActionArtistCreated,
		EntityID:   a.ID,
		Name:       a.Name,
		City:       a.City,
		State:      a.State,
		OccurredAt: time.Now().UTC().Format(startTimeLayout),
	})
	return c.JSON(http.StatusCreated, artistRecordFrom(a))
}

// EditArtistForm handles GET /artists/:id/edit.
func (h *ArtistHandler) EditArtistForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.ArtistRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, artistRecordFrom(a))
}

// UpdateArtist handles POST /artists/:id/edit.
func (h *ArtistHandler) UpdateArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var form artistForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := form.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	if err := h.ArtistRepo.Update(ctx, form.toArtist(id)); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": form.Name + " could not be updated"})
	}
	updated, err := h.ArtistRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, artistRecordFrom(updated))
}
