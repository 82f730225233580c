// Package repository contains data access logic for the booking directory.
// This file defines sentinel errors shared across repositories so that
// handlers can map failure modes to HTTP status codes without inspecting
// driver-specific error strings.
package repository

import "errors"

// ErrVenueNotFound is returned when a venue id matches no row.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when an artist id matches no row.
var ErrArtistNotFound = errors.New("artist not found")

// ErrShowNotFound is returned when a show id matches no row.
var ErrShowNotFound = errors.New("show not found")

// ErrUnknownGenre is returned when a genre value is not part of the
// enumerated genre list.
var ErrUnknownGenre = errors.New("unknown genre")

// ErrUnknownState is returned when a state code is not a recognized
// two-letter US state code.
var ErrUnknownState = errors.New("unknown state")
