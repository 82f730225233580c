package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booking-directory/internal/queue"
	"github.com/iliyamo/booking-directory/internal/repository"
	queue_publisher "github.com/iliyamo/booking-directory/internal/service"
)

// ShowHandler aggregates the repositories the show endpoints need.
type ShowHandler struct {
	ShowRepo *repository.ShowRepo
}

// showForm binds the create-show submission. StartTime accepts either
// "2006-01-02 15:04:05" or RFC 3339.
type showForm struct {
	ArtistID  uint64 `json:"artist_id" form:"artist_id"`
	VenueID   uint64 `json:"venue_id" form:"venue_id"`
	StartTime string `json:"start_time" form:"start_time"`
}

// ListShows handles GET /shows: every show with both parents' names and the
// artist image, ordered by start time.
func (h *ShowHandler) ListShows(c echo.Context) error {
	rows, err := h.ShowRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rows == nil {
		rows = []repository.ShowListRow{}
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": rows})
}

// NewShowForm handles GET /shows/create.
func (h *ShowHandler) NewShowForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"fields": []string{"artist_id", "venue_id", "start_time"},
	})
}

// CreateShow handles POST /shows/create. Both parent ids must reference
// existing rows; the check and the insert share one transaction so a
// dangling show can never be committed.
func (h *ShowHandler) CreateShow(c echo.Context) error {
	var form showForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if form.ArtistID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist_id is required"})
	}
	if form.VenueID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue_id is required"})
	}
	if strings.TrimSpace(form.StartTime) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time is required"})
	}
	startTime, err := parseStartTime(form.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time"})
	}
	s := &repository.Show{
		ArtistID:  form.ArtistID,
		VenueID:   form.VenueID,
		StartTime: startTime,
	}
	if err := h.ShowRepo.Create(c.Request().Context(), s); err != nil {
		switch {
		case errors.Is(err, repository.ErrArtistNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist not found"})
		case errors.Is(err, repository.ErrVenueNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "show could not be listed"})
		}
	}
	queue_publisher.PublishListingActivity(c.Request().Context(), queue.ListingActivityEvent{
		Action:     queue.ActionShowListed,
		EntityID:   s.ID,
		ArtistID:   s.ArtistID,
		VenueID:    s.VenueID,
		StartTime:  s.StartTime.Format(startTimeLayout),
		OccurredAt: time.Now().UTC().Format(startTimeLayout),
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"id":         s.ID,
		"artist_id":  s.ArtistID,
		"venue_id":   s.VenueID,
		"start_time": s.StartTime,
	})
}
