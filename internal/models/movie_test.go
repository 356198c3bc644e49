package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Inception", "inception"},
		{"spaces become dashes", "The Dark Knight", "the-dark-knight"},
		{"punctuation collapses", "Mission: Impossible - Fallout", "mission-impossible-fallout"},
		{"digits kept", "Blade Runner 2049", "blade-runner-2049"},
		{"trailing punctuation trimmed", "Up!", "up"},
		{"empty title", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		name string
		date string
		want int
		ok   bool
	}{
		{"valid date", "1994-06-10", 1994, true},
		{"empty date", "", 0, false},
		{"malformed date", "not-a-date", 0, false},
		{"year only is not a full date", "1994", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Movie{ReleaseDate: tt.date}
			year, ok := m.ReleaseYear()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, year)
		})
	}
}

func TestReleaseTimeInvalidIsZero(t *testing.T) {
	assert.True(t, Movie{ReleaseDate: ""}.ReleaseTime().IsZero())
	assert.False(t, Movie{ReleaseDate: "2010-07-16"}.ReleaseTime().IsZero())
}

func TestMovieListParamsValidate(t *testing.T) {
	p := MovieListParams{Page: -1, PageSize: 500, SortBy: "bogus", Order: "sideways"}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, "popularity", p.SortBy)
	assert.Equal(t, "desc", p.Order)
}
