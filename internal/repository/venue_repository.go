// This file defines the Venue model and repository methods for venues. A
// Venue is a place that hosts shows; it owns its shows, which are removed
// with it when it is deleted.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Venue represents a venue row plus its genre values from venue_genres.
// SeekingDescription is nullable; every other column is required.
type Venue struct {
	ID                 uint64
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	ImageLink          string
	Genres             []string
	FacebookLink       string
	WebsiteLink        string
	SeekingTalent      bool
	SeekingDescription sql.NullString
	CreatedAt          time.Time
}

// VenueCityRow is one venue inside the grouped-by-city listing. City and
// State drive the grouping and are lifted onto the group, so they are not
// serialized on the row itself.
type VenueCityRow struct {
	ID                uint64 `json:"id"`
	Name              string `json:"name"`
	City              string `json:"-"`
	State             string `json:"-"`
	UpcomingShowCount int    `json:"num_upcoming_shows"`
}

// SearchRow is one venue or artist match in a name search response.
type SearchRow struct {
	ID                uint64 `json:"id"`
	Name              string `json:"name"`
	UpcomingShowCount int    `json:"num_upcoming_shows"`
}

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// DB exposes the underlying sql.DB for callers that need transactions
// spanning multiple repositories.
func (r *VenueRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a venue and its genre rows in one transaction. On success
// the generated ID and creation timestamp are populated on the given Venue.
func (r *VenueRepo) Create(ctx context.Context, v *Venue) (err error) {
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

	v.CreatedAt = time.Now().UTC().Truncate(time.Second)
	const q = `INSERT INTO venues
		(name, city, state, address, phone, image_link, facebook_link, website_link, seeking_talent, seeking_description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
		v.FacebookLink, v.WebsiteLink, v.SeekingTalent, v.SeekingDescription, v.CreatedAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	err = replaceGenresTx(ctx, tx, "venue_genres", "venue_id", v.ID, v.Genres)
	return err
}

// GetByID fetches a venue and its genres by id. It returns ErrVenueNotFound
// if no row is found. The venue's own attributes are read independently of
// its shows, so zero-show venues resolve normally.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*Venue, error) {
	const q = `SELECT id, name, city, state, address, phone, image_link, facebook_link, website_link, seeking_talent, seeking_description, created_at
		FROM venues WHERE id = ?`
	var v Venue
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink,
		&v.FacebookLink, &v.WebsiteLink, &v.SeekingTalent, &v.SeekingDescription, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	if v.Genres, err = loadGenres(ctx, r.db, "venue_genres", "venue_id", v.ID); err != nil {
		return nil, err
	}
	return &v, nil
}

// Update rewrites every venue attribute and replaces its genre rows in one
// transaction. It returns ErrVenueNotFound when the id matches no row; no
// partial write survives a failure.
func (r *VenueRepo) Update(ctx context.Context, v *Venue) (err error) {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, v.ID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	const q = `UPDATE venues
		SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?,
		    facebook_link = ?, website_link = ?, seeking_talent = ?, seeking_description = ?
		WHERE id = ?`
	if _, err = tx.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
		v.FacebookLink, v.WebsiteLink, v.SeekingTalent, v.SeekingDescription, v.ID,
	); err != nil {
		return err
	}
	err = replaceGenresTx(ctx, tx, "venue_genres", "venue_id", v.ID, v.Genres)
	return err
}

// Delete removes a venue together with all of its shows and genre rows in
// one transaction. Deleting a missing venue returns ErrVenueNotFound; a
// failed delete leaves venue and shows untouched.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM venue_genres WHERE venue_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	return err
}

// ListForGrouping returns every venue with its upcoming-show count, ordered
// (city, state, id) so the grouped listing can be built in a single pass.
// A show counts as upcoming when it starts strictly after upcomingAfter,
// which callers capture once per request.
func (r *VenueRepo) ListForGrouping(ctx context.Context, upcomingAfter time.Time) ([]VenueCityRow, error) {
	const q = `SELECT v.id, v.name, v.city, v.state, COUNT(s.id)
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id AND s.start_time > ?
		GROUP BY v.id, v.name, v.city, v.state
		ORDER BY v.city, v.state, v.id`
	rows, err := r.db.QueryContext(ctx, q, upcomingAfter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VenueCityRow
	for rows.Next() {
		var row VenueCityRow
		if err := rows.Scan(&row.ID, &row.Name, &row.City, &row.State, &row.UpcomingShowCount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SearchByName returns distinct venues whose name contains term
// (case-insensitive), ordered by id, each with its upcoming-show count.
// The LEFT JOIN keeps zero-show venues in the result with a count of 0.
func (r *VenueRepo) SearchByName(ctx context.Context, term string, upcomingAfter time.Time) ([]SearchRow, error) {
	const q = `SELECT v.id, v.name, COUNT(s.id)
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id AND s.start_time > ?
		WHERE LOWER(v.name) LIKE ?
		GROUP BY v.id, v.name
		ORDER BY v.id`
	pattern := "%" + strings.ToLower(term) + "%"
	rows, err := r.db.QueryContext(ctx, q, upcomingAfter, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SearchRow
	for rows.Next() {
		var row SearchRow
		if err := rows.Scan(&row.ID, &row.Name, &row.UpcomingShowCount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Count returns the total number of venues.
func (r *VenueRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&n)
	return n, err
}
