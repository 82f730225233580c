// Package router defines how HTTP routes are registered for the directory.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booking-directory/internal/handler"
)

// RegisterRoutes registers the routes that need no repositories: the health
// check used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterDirectory registers the full browse-and-mutate surface. The
// browseCache middleware (possibly a pass-through) wraps the read-heavy
// public listings; mutations are never cached.
func RegisterDirectory(
	e *echo.Echo,
	home *handler.HomeHandler,
	venues *handler.VenueHandler,
	artists *handler.ArtistHandler,
	shows *handler.ShowHandler,
	browseCache echo.MiddlewareFunc,
) {
	e.GET("/", home.Index, browseCache)

	// ---- Venues ----
	e.GET("/venues", venues.ListVenues, browseCache)
	e.POST("/venues/search", venues.SearchVenues)
	e.GET("/venues/create", venues.NewVenueForm)
	e.POST("/venues/create", venues.CreateVenue)
	e.GET("/venues/:id", venues.GetVenue)
	e.GET("/venues/:id/edit", venues.EditVenueForm)
	e.POST("/venues/:id/edit", venues.UpdateVenue)
	e.POST("/venues/:id/delete", venues.DeleteVenue)

	// ---- Artists ----
	e.GET("/artists", artists.ListArtists, browseCache)
	e.POST("/artists/search", artists.SearchArtists)
	e.GET("/artists/create", artists.NewArtistForm)
	e.POST("/artists/create", artists.CreateArtist)
	e.GET("/artists/:id", artists.GetArtist)
	e.GET("/artists/:id/edit", artists.EditArtistForm)
	e.POST("/artists/:id/edit", artists.UpdateArtist)

	// ---- Shows ----
	e.GET("/shows", shows.ListShows, browseCache)
	e.GET("/shows/create", shows.NewShowForm)
	e.POST("/shows/create", shows.CreateShow)
}
