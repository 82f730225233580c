// This file defines the Show model and repository methods for shows. A Show
// is a pure join entity: one artist at one venue at one instant. Shows are
// only ever created; they disappear solely through their parent's cascade.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Show represents a scheduled performance linking an artist to a venue.
// StartTime is stored as DATETIME in UTC.
type Show struct {
	ID        uint64
	ArtistID  uint64
	VenueID   uint64
	StartTime time.Time
}

// VenueShowRow is one show on a venue detail page, denormalized with the
// performing artist's id, name and image.
type VenueShowRow struct {
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ScheduledAt returns the show's start time for past/upcoming partitioning.
func (r VenueShowRow) ScheduledAt() time.Time { return r.StartTime }

// ArtistShowRow is one show on an artist detail page, denormalized with the
// hosting venue's id, name and image.
type ArtistShowRow struct {
	VenueID        uint64    `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

// ScheduledAt returns the show's start time for past/upcoming partitioning.
func (r ArtistShowRow) ScheduledAt() time.Time { return r.StartTime }

// ShowListRow is one show in the global listing, denormalized with both
// parents' names and the artist's image.
type ShowListRow struct {
	VenueID         uint64    `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// DB exposes the underlying sql.DB.
func (r *ShowRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a show after verifying both parents exist, all inside one
// transaction so a dangling reference can never be committed. It returns
// ErrArtistNotFound or ErrVenueNotFound when a parent id is unknown. On
// success the generated ID is populated on the given Show.
func (r *ShowRepo) Create(ctx context.Context, s *Show) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ?`, s.ArtistID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrArtistNotFound
		}
		return err
	}
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, s.VenueID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`,
		s.ArtistID, s.VenueID, s.StartTime,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ListByVenue returns every show at one venue joined with the performing
// artist, ordered by start time. Venues without shows yield an empty slice.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]VenueShowRow, error) {
	const q = `SELECT s.artist_id, a.name, a.image_link, s.start_time
		FROM shows s
		JOIN artists a ON a.id = s.artist_id
		WHERE s.venue_id = ?
		ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VenueShowRow
	for rows.Next() {
		var row VenueShowRow
		if err := rows.Scan(&row.ArtistID, &row.ArtistName, &row.ArtistImageLink, &row.StartTime); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListByArtist returns every show played by one artist joined with the
// hosting venue, ordered by start time.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]ArtistShowRow, error) {
	const q = `SELECT s.venue_id, v.name, v.image_link, s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		WHERE s.artist_id = ?
		ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ArtistShowRow
	for rows.Next() {
		var row ArtistShowRow
		if err := rows.Scan(&row.VenueID, &row.VenueName, &row.VenueImageLink, &row.StartTime); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListAll returns every show joined with both parents, ordered by start
// time, for the global shows listing.
func (r *ShowRepo) ListAll(ctx context.Context) ([]ShowListRow, error) {
	const q = `SELECT s.venue_id, v.name, s.artist_id, a.name, a.image_link, s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		JOIN artists a ON a.id = s.artist_id
		ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ShowListRow
	for rows.Next() {
		var row ShowListRow
		if err := rows.Scan(&row.VenueID, &row.VenueName, &row.ArtistID, &row.ArtistName, &row.ArtistImageLink, &row.StartTime); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Count returns the total number of shows.
func (r *ShowRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows`).Scan(&n)
	return n, err
}

// CountByVenue returns the number of shows attached to one venue.
func (r *ShowRepo) CountByVenue(ctx context.Context, venueID uint64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows WHERE venue_id = ?`, venueID).Scan(&n)
	return n, err
}
