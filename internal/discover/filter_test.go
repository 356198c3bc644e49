package discover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-discovery-service/internal/models"
)

func filterCorpus() []models.Movie {
	return []models.Movie{
		{ID: 1, Title: "Steel Dawn", Genres: "Action,Adventure", VoteAverage: 8.0, Popularity: 90, Runtime: 130, ReleaseDate: "2010-07-16"},
		{ID: 2, Title: "Laughing Fists", Genres: "Action,Comedy", VoteAverage: 7.0, Popularity: 40, Runtime: 95, ReleaseDate: "1998-01-30"},
		{ID: 3, Title: "Summer of Love", Genres: "Romance", Description: "A love that outlasts the season.", VoteAverage: 6.0, Popularity: 10, Runtime: 105, ReleaseDate: "2015-06-01"},
		{ID: 4, Title: "After Midnight", Genres: "Horror,Thriller", VoteAverage: 5.5, Popularity: 30, Runtime: 88, ReleaseDate: "", Adult: true},
		{ID: 5, Title: "Paper Planets", Genres: "Animation,Family", VoteAverage: 7.6, Popularity: 65, Runtime: 0, ReleaseDate: "2020-12-25"},
	}
}

func TestFiltersApply(t *testing.T) {
	corpus := filterCorpus()

	tests := []struct {
		name    string
		filters Filters
		wantIDs []int
	}{
		{"no constraints keeps all", Filters{}, []int{1, 2, 3, 4, 5}},
		{"min rating", Filters{MinRating: 7.0}, []int{1, 2, 5}},
		{"rating band", Filters{MinRating: 5.0, MaxRating: 6.5}, []int{3, 4}},
		{"year range excludes undated", Filters{MinYear: 1990, MaxYear: 2016}, []int{1, 2, 3}},
		{"runtime band excludes unknown runtime", Filters{MinRuntime: 80, MaxRuntime: 110}, []int{2, 3, 4}},
		{"exclude adult", Filters{ExcludeAdult: true}, []int{1, 2, 3, 5}},
		{"min popularity", Filters{MinPopularity: 50}, []int{1, 5}},
		{"genre membership", Filters{Genres: []string{"comedy", "romance"}}, []int{2, 3}},
		{"title substring", Filters{Title: "paper"}, []int{5}},
		{"all constraints ANDed", Filters{MinRating: 7.0, Genres: []string{"action"}, MinYear: 2000}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filters.Apply(corpus)
			ids := make([]int, len(got))
			for i, m := range got {
				ids[i] = m.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFiltersIdempotent(t *testing.T) {
	corpus := filterCorpus()
	f := Filters{MinRating: 6.5, ExcludeAdult: true, MinYear: 1990}

	once := f.Apply(corpus)
	twice := f.Apply(once)
	assert.Equal(t, once, twice)
}

func TestFiltersDoNotMutateCorpus(t *testing.T) {
	corpus := filterCorpus()
	snapshot := make([]models.Movie, len(corpus))
	copy(snapshot, corpus)

	Filters{MinRating: 7.0}.Apply(corpus)
	assert.Equal(t, snapshot, corpus)
}

func TestMatchesMood(t *testing.T) {
	corpus := filterCorpus()

	tests := []struct {
		name  string
		mood  string
		movie models.Movie
		want  bool
	}{
		{"happy via comedy", "happy", corpus[1], true},
		{"happy via animation", "happy", corpus[4], true},
		{"happy rejects romance", "happy", corpus[2], false},
		{"romantic via genre", "romantic", corpus[2], true},
		{"romantic via love text", "romantic", models.Movie{Title: "Love Actually", Genres: "Comedy"}, true},
		{"intense via horror", "intense", corpus[3], true},
		{"thoughtful via drama", "thoughtful", models.Movie{Genres: "Drama"}, true},
		{"unknown mood matches nothing", "melancholy", corpus[0], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesMood(tt.movie, tt.mood))
		})
	}
}

func TestMoods(t *testing.T) {
	moods := Moods()
	require.Len(t, moods, 4)
	assert.Contains(t, moods, "happy")
	assert.Contains(t, moods, "romantic")
	assert.Contains(t, moods, "intense")
	assert.Contains(t, moods, "thoughtful")
}
