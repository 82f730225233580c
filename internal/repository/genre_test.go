package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidGenre(t *testing.T) {
	assert.True(t, ValidGenre("Jazz"))
	assert.True(t, ValidGenre("Hip-Hop"))
	assert.True(t, ValidGenre("R&B"))
	assert.True(t, ValidGenre("Rock n Roll"))
	assert.False(t, ValidGenre("jazz"))
	assert.False(t, ValidGenre("Dubstep"))
	assert.False(t, ValidGenre(""))
}

func TestValidState(t *testing.T) {
	assert.True(t, ValidState("CA"))
	assert.True(t, ValidState("DC"))
	assert.False(t, ValidState("ca"))
	assert.False(t, ValidState("XX"))
	assert.Len(t, States, 51)
}

func TestValidateGenres(t *testing.T) {
	assert.NoError(t, ValidateGenres(nil))
	assert.NoError(t, ValidateGenres([]string{"Jazz", "Reggae"}))
	assert.ErrorIs(t, ValidateGenres([]string{"Jazz", "Polka"}), ErrUnknownGenre)
}
