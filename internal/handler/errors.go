package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler is the central Echo error handler. Unknown routes render
// the JSON 404 page; everything uncaught renders the generic 500 page. No
// query or stack detail ever reaches the client.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := "internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			message = s
		}
	}
	switch code {
	case http.StatusNotFound:
		message = "not found"
	case http.StatusMethodNotAllowed:
		message = "method not allowed"
	case http.StatusInternalServerError:
		message = "internal server error"
		log.Printf("server error: %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"error": message})
}
