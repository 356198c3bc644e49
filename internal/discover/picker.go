package discover

import (
	"math"
	"math/rand"
	"sort"

	"movie-discovery-service/internal/models"
)

// PickedMovie is a movie plus its computed pick score.
type PickedMovie struct {
	models.Movie
	PickScore float64 `json:"pick_score"`
}

// MoodMovie is a movie plus its mood-finder score.
type MoodMovie struct {
	models.Movie
	MoodScore float64 `json:"mood_score"`
}

// PickOptions tunes the score-then-shuffle selection.
// Weights default to 0.6 rating / 0.4 popularity when both are zero.
type PickOptions struct {
	Limit            int
	RatingWeight     float64
	PopularityWeight float64
	Mood             string   // bonus if the movie matches this mood
	BonusGenres      []string // bonus per matched genre
}

const (
	defaultRatingWeight     = 0.6
	defaultPopularityWeight = 0.4
	moodBonus               = 0.5
	genreBonus              = 0.25
	topKCap                 = 40
	relaxedMinRating        = 7.0
)

// Pick applies hard filters, scores survivors, and shuffles only the top-K
// slice before truncating — quality-bounded randomness: every returned movie
// is among the best matches, but repeated calls vary their order.
//
// If the filters match nothing, selection relaxes to "any movie rated >= 7.0"
// before giving up; an empty return means even that found nothing and the
// caller reports not-found.
func Pick(corpus []models.Movie, filters Filters, opts PickOptions) []PickedMovie {
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	w1, w2 := opts.RatingWeight, opts.PopularityWeight
	if w1 == 0 && w2 == 0 {
		w1, w2 = defaultRatingWeight, defaultPopularityWeight
	}

	candidates := filters.Apply(corpus)
	if len(candidates) == 0 {
		candidates = Filters{MinRating: relaxedMinRating}.Apply(corpus)
	}
	if len(candidates) == 0 {
		return []PickedMovie{}
	}

	scored := make([]PickedMovie, 0, len(candidates))
	for _, m := range candidates {
		score := m.VoteAverage*w1 + math.Min(m.Popularity/100, 1)*w2
		if opts.Mood != "" && MatchesMood(m, opts.Mood) {
			score += moodBonus
		}
		for _, g := range opts.BonusGenres {
			if genreFieldMatchesAny(m.Genres, []string{g}) {
				score += genreBonus
			}
		}
		scored = append(scored, PickedMovie{Movie: m, PickScore: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].PickScore != scored[j].PickScore {
			return scored[i].PickScore > scored[j].PickScore
		}
		return scored[i].ID < scored[j].ID
	})

	k := opts.Limit * 2
	if k > topKCap {
		k = topKCap
	}
	if k > len(scored) {
		k = len(scored)
	}
	top := scored[:k]
	rand.Shuffle(len(top), func(i, j int) {
		top[i], top[j] = top[j], top[i]
	})

	if len(top) > opts.Limit {
		top = top[:opts.Limit]
	}
	return top
}

// PickByMood runs Pick constrained to a mood and re-tags the score for the
// mood-finder response shape.
func PickByMood(corpus []models.Movie, mood string, filters Filters, opts PickOptions) []MoodMovie {
	matching := make([]models.Movie, 0, len(corpus))
	for _, m := range corpus {
		if MatchesMood(m, mood) {
			matching = append(matching, m)
		}
	}
	if len(matching) == 0 {
		// Relaxation inside Pick still needs the full corpus to draw from.
		matching = corpus
	}
	opts.Mood = mood
	picked := Pick(matching, filters, opts)
	out := make([]MoodMovie, len(picked))
	for i, p := range picked {
		out[i] = MoodMovie{Movie: p.Movie, MoodScore: p.PickScore}
	}
	return out
}
