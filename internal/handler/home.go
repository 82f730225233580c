package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booking-directory/internal/repository"
)

// HomeHandler serves the landing payload with directory-wide counts.
type HomeHandler struct {
	VenueRepo  *repository.VenueRepo
	ArtistRepo *repository.ArtistRepo
	ShowRepo   *repository.ShowRepo
}

// Index handles GET / and returns the landing page data.
func (h *HomeHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()
	venues, err := h.VenueRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	artists, err := h.ArtistRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	shows, err := h.ShowRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"name":    "booking directory",
		"venues":  venues,
		"artists": artists,
		"shows":   shows,
	})
}
