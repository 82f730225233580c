package repository

import (
	"context"
	"database/sql"
)

// Genres enumerates every genre a venue or artist may carry. Genre values
// live in the venue_genres/artist_genres join tables, one row per value with
// an explicit position, so ordering survives round-trips and values are
// never joined into a single delimited column.
var Genres = []string{
	"Alternative",
	"Blues",
	"Classical",
	"Country",
	"Electronic",
	"Folk",
	"Funk",
	"Hip-Hop",
	"Heavy Metal",
	"Instrumental",
	"Jazz",
	"Musical Theatre",
	"Pop",
	"Punk",
	"R&B",
	"Reggae",
	"Rock n Roll",
	"Soul",
	"Other",
}

// States enumerates the accepted two-letter US state codes.
var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI",
	"ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN",
	"MS", "MO", "MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA",
	"WV", "WI", "WY",
}

var genreSet = toSet(Genres)
var stateSet = toSet(States)

func toSet(vals []string) map[string]bool {
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

// ValidGenre reports whether name is one of the enumerated genres.
func ValidGenre(name string) bool { return genreSet[name] }

// ValidState reports whether code is a recognized state code.
func ValidState(code string) bool { return stateSet[code] }

// ValidateGenres checks every value against the genre enumeration and
// returns ErrUnknownGenre on the first miss.
func ValidateGenres(names []string) error {
	for _, n := range names {
		if !ValidGenre(n) {
			return ErrUnknownGenre
		}
	}
	return nil
}

// loadGenres reads the genre values attached to one owner row, ordered by
// position. table is "venue_genres" or "artist_genres"; ownerCol the
// matching foreign key column.
func loadGenres(ctx context.Context, db *sql.DB, table, ownerCol string, id uint64) ([]string, error) {
	q := "SELECT name FROM " + table + " WHERE " + ownerCol + " = ? ORDER BY position"
	rows, err := db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// replaceGenresTx rewrites the genre rows for one owner inside the caller's
// transaction. Existing rows are removed first so the new set fully replaces
// the old one.
func replaceGenresTx(ctx context.Context, tx *sql.Tx, table, ownerCol string, id uint64, genres []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE "+ownerCol+" = ?", id); err != nil {
		return err
	}
	q := "INSERT INTO " + table + " (" + ownerCol + ", position, name) VALUES (?, ?, ?)"
	for i, name := range genres {
		if _, err := tx.ExecContext(ctx, q, id, i, name); err != nil {
			return err
		}
	}
	return nil
}
