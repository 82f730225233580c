package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCreate(t *testing.T) {
	db := newTestDB(t)
	venues := NewVenueRepo(db)
	artists := NewArtistRepo(db)
	shows := NewShowRepo(db)

	v := seedVenue(t, venues, "The Musical Hop", "San Francisco", "CA", []string{"Jazz"})
	a := seedArtist(t, artists, "Guns N Petals", "San Francisco", "CA", []string{"Rock n Roll"})

	s := &Show{ArtistID: a.ID, VenueID: v.ID, StartTime: dt(2026, 10, 1, 20)}
	require.NoError(t, shows.Create(context.Background(), s))
	assert.NotZero(t, s.ID)
}

func TestShowCreateUnknownArtist(t *testing.T) {
	db := newTestDB(t)
	venues := NewVenueRepo(db)
	shows := NewShowRepo(db)
	ctx := context.Background()

	v := seedVenue(t, venues, "The Musical Hop", "San Francisco", "CA", []string{"Jazz"})

	err := shows.Create(ctx, &Show{ArtistID: 99, VenueID: v.ID, StartTime: dt(2026, 10, 1, 20)})
	assert.ErrorIs(t, err, ErrArtistNotFound)

	n, err := shows.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestShowCreateUnknownVenue(t *testing.T) {
	db := newTestDB(t)
	artists := NewArtistRepo(db)
	shows := NewShowRepo(db)
	ctx := context.Background()

	a := seedArtist(t, artists, "Guns N Petals", "San Francisco", "CA", []string{"Rock n Roll"})

	err := shows.Create(ctx, &Show{ArtistID: a.ID, VenueID: 99, StartTime: dt(2026, 10, 1, 20)})
	assert.ErrorIs(t, err, ErrVenueNotFound)

	n, err := shows.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestShowListByVenueDenormalized(t *testing.T) {
	db := newTestDB(t)
	venues := NewVenueRepo(db)
	artists := NewArtistRepo(db)
	shows := NewShowRepo(db)
	ctx := context.Background()

	v := seedVenue(t, venues, "The Musical Hop", "San Francisco", "CA", []string{"Jazz"})
	a := seedArtist(t, artists, "Guns N Petals", "San Francisco", "CA", []string{"Rock n Roll"})
	a.ImageLink = "https://example.com/gnp.jpg"
	require.NoError(t, artists.Update(ctx, a))

	late := seedShow(t, shows, a.ID, v.ID, dt(2026, 11, 1, 20))
	early := seedShow(t, shows, a.ID, v.ID, dt(2026, 10, 1, 20))

	rows, err := shows.ListByVenue(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.True(t, early.StartTime.Equal(rows[0].StartTime))
	assert.True(t, late.StartTime.Equal(rows[1].StartTime))
	assert.Equal(t, a.ID, rows[0].ArtistID)
	assert.Equal(t, "Guns N Petals", rows[0].ArtistName)
	assert.Equal(t, "https://example.com/gnp.jpg", rows[0].ArtistImageLink)
}

func TestShowListByArtistDenormalized(t *testing.T) {
	db := newTestDB(t)
	venues := NewVenueRepo(db)
	artists := NewArtistRepo(db)
	shows := NewShowRepo(db)
	ctx := context.Background()

	v := seedVenue(t, venues, "Park Square Live Music & Coffee", "New York", "NY", []string{"Folk"})
	a := seedArtist(t, artists, "Matt Quevedo", "New York", "NY", []string{"Jazz"})
	seedShow(t, shows, a.ID, v.ID, dt(2026, 10, 1, 20))

	rows, err := shows.ListByArtist(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, v.ID, rows[0].VenueID)
	assert.Equal(t, "Park Square Live Music & Coffee", rows[0].VenueName)
}

func TestShowListByVenueEmpty(t *testing.T) {
	db := newTestDB(t)
	venues := NewVenueRepo(db)
	shows := NewShowRepo(db)

	v := seedVenue(t, venues, "The Musical Hop", "San Francisco", "CA", []string{"Jazz"})

	rows, err := shows.ListByVenue(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestShowListAllOrderedByStartTime(t *testing.T) {
	db := newTestDB(t)
	venues := NewVenueRepo(db)
	artists := NewArtistRepo(db)
	shows := NewShowRepo(db)
	ctx := context.Background()

	v1 := seedVenue(t, venues, "The Musical Hop", "San Francisco", "CA", []string{"Jazz"})
	v2 := seedVenue(t, venues, "Park Square Live Music & Coffee", "New York", "NY", []string{"Folk"})
	a := seedArtist(t, artists, "The Wild Sax Band", "San Francisco", "CA", []string{"Jazz"})

	base := dt(2026, 10, 1, 20)
	seedShow(t, shows, a.ID, v2.ID, base.Add(48*time.Hour))
	seedShow(t, shows, a.ID, v1.ID, base)

	rows, err := shows.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, v1.ID, rows[0].VenueID)
	assert.Equal(t, "The Musical Hop", rows[0].VenueName)
	assert.Equal(t, "The Wild Sax Band", rows[0].ArtistName)
	assert.Equal(t, v2.ID, rows[1].VenueID)
	assert.True(t, rows[0].StartTime.Before(rows[1].StartTime))
}
