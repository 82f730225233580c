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

// VenueHandler aggregates the repositories the venue endpoints need.
type VenueHandler struct {
	VenueRepo *repository.VenueRepo
	ShowRepo  *repository.ShowRepo
}

// venueForm binds the create/edit submission. Field names match the
// original form inputs; both form-encoded and JSON bodies bind.
type venueForm struct {
	Name               string   `json:"name" form:"name"`
	City               string   `json:"city" form:"city"`
	State              string   `json:"state" form:"state"`
	Address            string   `json:"address" form:"address"`
	Phone              string   `json:"phone" form:"phone"`
	ImageLink          string   `json:"image_link" form:"image_link"`
	Genres             []string `json:"genres" form:"genres"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
	WebsiteLink        string   `json:"website_link" form:"website_link"`
	SeekingTalent      bool     `json:"seeking_talent" form:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
}

// validate checks required fields and enum membership; it returns an empty
// string when the form is acceptable. Validation rejects the whole request
// before any write happens.
func (f *venueForm) validate() string {
	f.Name = strings.TrimSpace(f.Name)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Address = strings.TrimSpace(f.Address)
	f.Phone = strings.TrimSpace(f.Phone)
	switch {
	case f.Name == "":
		return "name is required"
	case f.City == "":
		return "city is required"
	case f.State == "":
		return "state is required"
	case f.Address == "":
		return "address is required"
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

func (f *venueForm) toVenue(id uint64) *repository.Venue {
	return &repository.Venue{
		ID:                 id,
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		Genres:             f.Genres,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: optionalText(f.SeekingDescription),
	}
}

// venueRecord is the JSON shape of a single venue without its shows.
type venueRecord struct {
	ID                 uint64   `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	Address            string   `json:"address"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	WebsiteLink        string   `json:"website_link"`
	FacebookLink       string   `json:"facebook_link"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription *string  `json:"seeking_description"`
	ImageLink          string   `json:"image_link"`
}

func venueRecordFrom(v *repository.Venue) venueRecord {
	return venueRecord{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             nonNil(v.Genres),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		WebsiteLink:        v.WebsiteLink,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: textPtr(v.SeekingDescription),
		ImageLink:          v.ImageLink,
	}
}

// venueDetail is the detail page payload: the venue record plus its shows
// split into past and upcoming.
type venueDetail struct {
	venueRecord
	PastShows          []repository.VenueShowRow `json:"past_shows"`
	UpcomingShows      []repository.VenueShowRow `json:"upcoming_shows"`
	PastShowsCount     int                       `json:"past_shows_count"`
	UpcomingShowsCount int                       `json:"upcoming_shows_count"`
}

// ListVenues handles GET /venues. Venues are grouped by (city, state) with
// each venue's upcoming-show count; the evaluation instant is captured once
// for the whole request.
func (h *VenueHandler) ListVenues(c echo.Context) error {
	now := time.Now().UTC()
	rows, err := h.VenueRepo.ListForGrouping(c.Request().Context(), now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	groups := listing.GroupByCity(rows)
	if groups == nil {
		groups = []listing.CityGroup{}
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": groups})
}

// SearchVenues handles POST /venues/search. Matching is case-insensitive
// substring containment on the name only; venues with zero upcoming shows
// still appear with a count of 0.
func (h *VenueHandler) SearchVenues(c echo.Context) error {
	var body struct {
		SearchTerm string `json:"search_term" form:"search_term"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	now := time.Now().UTC()
	rows, err := h.VenueRepo.SearchByName(c.Request().Context(), body.SearchTerm, now)
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

// GetVenue handles GET /venues/:id. The venue's attributes are fetched
// independently of its shows, so a venue with no shows still renders with
// empty lists and zero counts.
func (h *VenueHandler) GetVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	v, err := h.VenueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	shows, err := h.ShowRepo.ListByVenue(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	now := time.Now().UTC()
	past, upcoming := listing.Partition(shows, now)
	return c.JSON(http.StatusOK, venueDetail{
		venueRecord:        venueRecordFrom(v),
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	})
}

// NewVenueForm handles GET /venues/create and describes the form fields and
// enumerations clients render.
func (h *VenueHandler) NewVenueForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"fields": []string{
			"name", "city", "state", "address", "phone", "image_link",
			"genres", "facebook_link", "website_link", "seeking_talent", "seeking_description",
		},
		"genres": repository.Genres,
		"states": repository.States,
	})
}

// CreateVenue handles POST /venues/create. The whole form must validate
// before any write; the venue and its genres commit in one transaction.
func (h *VenueHandler) CreateVenue(c echo.Context) error {
	var form venueForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := form.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	v := form.toVenue(0)
	if err := h.VenueRepo.Create(c.Request().Context(), v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "venue " + form.Name + " could not be listed"})
	}
	queue_publisher.PublishListingActivity(c.Request().Context(), queue.ListingActivityEvent{
		Action:     queue.ActionVenueCreated,
		EntityID:   v.ID,
		Name:       v.Name,
		City:       v.City,
		State:      v.State,
		OccurredAt: time.Now().UTC().Format(startTimeLayout),
	})
	return c.JSON(http.StatusCreated, venueRecordFrom(v))
}

// EditVenueForm handles GET /venues/:id/edit and returns the current record
// for form prefill. An unknown id is a 404, not a fault.
func (h *VenueHandler) EditVenueForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	v, err := h.VenueRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, venueRecordFrom(v))
}

// UpdateVenue handles POST /venues/:id/edit. Every attribute and the genre
// set are rewritten in one transaction; on failure nothing changes.
func (h *VenueHandler) UpdateVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var form venueForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := form.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	if err := h.VenueRepo.Update(ctx, form.toVenue(id)); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": form.Name + " could not be updated"})
	}
	updated, err := h.VenueRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, venueRecordFrom(updated))
}

// DeleteVenue handles POST /venues/:id/delete. The venue and all of its
// shows disappear atomically; a failed delete leaves both untouched.
func (h *VenueHandler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	v, err := h.VenueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.VenueRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	queue_publisher.PublishListingActivity(ctx, queue.ListingActivityEvent{
		Action:     queue.ActionVenueDeleted,
		EntityID:   id,
		Name:       v.Name,
		City:       v.City,
		State:      v.State,
		OccurredAt: time.Now().UTC().Format(startTimeLayout),
	})
	return c.NoContent(http.StatusNoContent)
}
