// This file defines the Artist model and repository methods for artists.
// An Artist mirrors a Venue minus the street address; its shows are removed
// with it when it is deleted.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Artist represents an artist row plus its genre values from artist_genres.
type Artist struct {
	ID                 uint64
	Name               string
	City               string
	State              string
	Phone              string
	ImageLink          string
	Genres             []string
	FacebookLink       string
	WebsiteLink        string
	SeekingVenue       bool
	SeekingDescription sql.NullString
	CreatedAt          time.Time
}

// ArtistRow is one artist in the flat artist listing.
type ArtistRow struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// DB exposes the underlying sql.DB for cross-repository transactions.
func (r *ArtistRepo) DB() *sql.DB {
	return r.db
}

// Create inserts an artist and its genre rows in one transaction. On
// success the generated ID and creation timestamp are populated.
func (r *ArtistRepo) Create(ctx context.Context, a *Artist) (err error) {
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

	a.CreatedAt = time.Now().UTC().Truncate(time.Second)
	const q = `INSERT INTO artists
		(name, city, state, phone, image_link, facebook_link, website_link, seeking_venue, seeking_description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone, a.ImageLink,
		a.FacebookLink, a.WebsiteLink, a.SeekingVenue, a.SeekingDescription, a.CreatedAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	err = replaceGenresTx(ctx, tx, "artist_genres", "artist_id", a.ID, a.Genres)
	return err
}

// GetByID fetches an artist and its genres by id. It returns
// ErrArtistNotFound if no row is found.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*Artist, error) {
	const q = `SELECT id, name, city, state, phone, image_link, facebook_link, website_link, seeking_venue, seeking_description, created_at
		FROM artists WHERE id = ?`
	var a Artist
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.ImageLink,
		&a.FacebookLink, &a.WebsiteLink, &a.SeekingVenue, &a.SeekingDescription, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	if a.Genres, err = loadGenres(ctx, r.db, "artist_genres", "artist_id", a.ID); err != nil {
		return nil, err
	}
	return &a, nil
}

// Update rewrites every artist attribute and replaces its genre rows in one
// transaction. It returns ErrArtistNotFound when the id matches no row.
func (r *ArtistRepo) Update(ctx context.Context, a *Artist) (err error) {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ?`, a.ID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrArtistNotFound
		}
		return err
	}
	const q = `UPDATE artists
		SET name = ?, city = ?, state = ?, phone = ?, image_link = ?,
		    facebook_link = ?, website_link = ?, seeking_venue = ?, seeking_description = ?
		WHERE id = ?`
	if _, err = tx.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone, a.ImageLink,
		a.FacebookLink, a.WebsiteLink, a.SeekingVenue, a.SeekingDescription, a.ID,
	); err != nil {
		return err
	}
	err = replaceGenresTx(ctx, tx, "artist_genres", "artist_id", a.ID, a.Genres)
	return err
}

// Delete removes an artist together with all of its shows and genre rows in
// one transaction. Deleting a missing artist returns ErrArtistNotFound.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrArtistNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM artist_genres WHERE artist_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
	return err
}

// ListAll returns every artist's id and name ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]ArtistRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM artists ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ArtistRow
	for rows.Next() {
		var row ArtistRow
		if err := rows.Scan(&row.ID, &row.Name); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SearchByName returns distinct artists whose name contains term
// (case-insensitive), ordered by id, each with its upcoming-show count.
// Zero-show artists stay in the result with a count of 0.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string, upcomingAfter time.Time) ([]SearchRow, error) {
	const q = `SELECT a.id, a.name, COUNT(s.id)
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id AND s.start_time > ?
		WHERE LOWER(a.name) LIKE ?
		GROUP BY a.id, a.name
		ORDER BY a.id`
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

// Count returns the total number of artists.
func (r *ArtistRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists`).Scan(&n)
	return n, err
}
