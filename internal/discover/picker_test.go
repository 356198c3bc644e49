package discover

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-discovery-service/internal/models"
)

func pickerCorpus() []models.Movie {
	corpus := make([]models.Movie, 0, 20)
	for i := 1; i <= 20; i++ {
		corpus = append(corpus, models.Movie{
			ID:          i,
			Title:       fmt.Sprintf("Movie %d", i),
			Genres:      "Action",
			VoteAverage: float64(i) / 2, // 0.5 .. 10.0
			Popularity:  float64(i * 5), // 5 .. 100
			ReleaseDate: "2015-01-01",
			Runtime:     100,
		})
	}
	return corpus
}

func TestPickStaysWithinTopK(t *testing.T) {
	corpus := pickerCorpus()
	limit := 3
	k := limit * 2

	// Score is monotonic in ID for this corpus, so the top-K window is the
	// K highest IDs.
	minAllowedID := len(corpus) - k + 1

	for run := 0; run < 100; run++ {
		picked := Pick(corpus, Filters{}, PickOptions{Limit: limit})
		require.Len(t, picked, limit)
		for _, p := range picked {
			assert.GreaterOrEqual(t, p.ID, minAllowedID)
		}
	}
}

func TestPickVariesAcrossRuns(t *testing.T) {
	corpus := pickerCorpus()

	first := Pick(corpus, Filters{}, PickOptions{Limit: 3})
	varied := false
	for run := 0; run < 100 && !varied; run++ {
		again := Pick(corpus, Filters{}, PickOptions{Limit: 3})
		for i := range again {
			if again[i].ID != first[i].ID {
				varied = true
				break
			}
		}
	}
	assert.True(t, varied, "shuffle should vary order across 100 runs")
}

func TestPickRelaxedFallback(t *testing.T) {
	corpus := pickerCorpus()

	// No movie is 200 minutes long; selection must relax to rating >= 7.0.
	picked := Pick(corpus, Filters{MinRuntime: 200}, PickOptions{Limit: 5})
	require.NotEmpty(t, picked)
	for _, p := range picked {
		assert.GreaterOrEqual(t, p.VoteAverage, relaxedMinRating)
	}
}

func TestPickEmptyWhenNothingQualifies(t *testing.T) {
	corpus := []models.Movie{
		{ID: 1, VoteAverage: 4.0, Runtime: 90},
		{ID: 2, VoteAverage: 5.0, Runtime: 90},
	}
	picked := Pick(corpus, Filters{MinRuntime: 200}, PickOptions{Limit: 5})
	assert.Empty(t, picked)
}

func TestPickScoreComposition(t *testing.T) {
	corpus := []models.Movie{
		{ID: 1, Genres: "Action", VoteAverage: 8, Popularity: 50},
	}
	picked := Pick(corpus, Filters{}, PickOptions{Limit: 1})
	require.Len(t, picked, 1)
	assert.InDelta(t, 8*0.6+0.5*0.4, picked[0].PickScore, 1e-9)
}

func TestPickBonuses(t *testing.T) {
	corpus := []models.Movie{
		{ID: 1, Genres: "Romance", Title: "Slow Waltz", VoteAverage: 7, Popularity: 50},
		{ID: 2, Genres: "Action", Title: "Steel Rain", VoteAverage: 7, Popularity: 50},
	}
	picked := Pick(corpus, Filters{}, PickOptions{Limit: 2, Mood: "romantic", BonusGenres: []string{"romance"}})
	require.Len(t, picked, 2)

	scores := map[int]float64{}
	for _, p := range picked {
		scores[p.ID] = p.PickScore
	}
	base := 7*0.6 + 0.5*0.4
	assert.InDelta(t, base+moodBonus+genreBonus, scores[1], 1e-9)
	assert.InDelta(t, base, scores[2], 1e-9)
}

func TestPickByMood(t *testing.T) {
	corpus := []models.Movie{
		{ID: 1, Genres: "Comedy", VoteAverage: 7.5, Popularity: 40},
		{ID: 2, Genres: "Horror", VoteAverage: 8.0, Popularity: 60},
		{ID: 3, Genres: "Animation,Family", VoteAverage: 7.8, Popularity: 70},
	}
	picked := PickByMood(corpus, "happy", Filters{}, PickOptions{Limit: 5})
	require.Len(t, picked, 2)
	for _, p := range picked {
		assert.NotEqual(t, 2, p.ID, "horror is not a happy pick")
		assert.Greater(t, p.MoodScore, 0.0)
	}
}

func TestPickDoesNotMutateCorpus(t *testing.T) {
	corpus := pickerCorpus()
	snapshot := make([]models.Movie, len(corpus))
	copy(snapshot, corpus)

	Pick(corpus, Filters{}, PickOptions{Limit: 5})
	assert.Equal(t, snapshot, corpus)
}
