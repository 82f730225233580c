// Package handler exposes the HTTP handlers for the booking directory:
// browse listings, name search, detail pages and the create/edit/delete
// forms for venues, artists and shows.
package handler

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// startTimeLayout is the form-facing layout for show start times. RFC 3339
// input is accepted as well.
const startTimeLayout = "2006-01-02 15:04:05"

func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// parseStartTime accepts either the form layout or RFC 3339 and normalizes
// the result to UTC.
func parseStartTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(startTimeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// optionalText maps an empty form field to SQL NULL.
func optionalText(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// textPtr renders a nullable column as JSON null when absent.
func textPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// nonNil keeps empty genre lists rendering as [] instead of null.
func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
