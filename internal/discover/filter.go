package discover

import (
	"strings"

	"movie-discovery-service/internal/models"
)

// Filters is a bundle of optional movie predicates. Zero values mean "no
// constraint"; every supplied predicate must pass. Year constraints exclude
// movies whose release date cannot be parsed.
type Filters struct {
	Title         string
	Genres        []string
	MinRating     float64
	MaxRating     float64
	MinYear       int
	MaxYear       int
	MinRuntime    int
	MaxRuntime    int
	ExcludeAdult  bool
	MinPopularity float64
}

// Apply returns the subset of the corpus passing every supplied predicate.
// Filtering is a pure subset operation and is therefore idempotent.
func (f Filters) Apply(corpus []models.Movie) []models.Movie {
	out := make([]models.Movie, 0, len(corpus))
	for _, m := range corpus {
		if f.matches(m) {
			out = append(out, m)
		}
	}
	return out
}

func (f Filters) matches(m models.Movie) bool {
	if f.Title != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(f.Title)) {
		return false
	}
	if len(f.Genres) > 0 && !genreFieldMatchesAny(m.Genres, f.Genres) {
		return false
	}
	if f.MinRating > 0 && m.VoteAverage < f.MinRating {
		return false
	}
	if f.MaxRating > 0 && m.VoteAverage > f.MaxRating {
		return false
	}
	if f.MinYear > 0 || f.MaxYear > 0 {
		year, ok := m.ReleaseYear()
		if !ok {
			return false
		}
		if f.MinYear > 0 && year < f.MinYear {
			return false
		}
		if f.MaxYear > 0 && year > f.MaxYear {
			return false
		}
	}
	if f.MinRuntime > 0 && m.Runtime < f.MinRuntime {
		return false
	}
	if f.MaxRuntime > 0 && (m.Runtime == 0 || m.Runtime > f.MaxRuntime) {
		return false
	}
	if f.ExcludeAdult && m.Adult {
		return false
	}
	if f.MinPopularity > 0 && m.Popularity < f.MinPopularity {
		return false
	}
	return true
}

// moodRule maps a mood label to its OR-conditions: genre membership, or a
// free-text match against title+description.
type moodRule struct {
	mood   string
	genres []string
	texts  []string
}

var moodRules = []moodRule{
	{"happy", []string{"comedy", "animation", "family", "musical"}, nil},
	{"romantic", []string{"romance"}, []string{"love"}},
	{"intense", []string{"action", "thriller", "horror"}, nil},
	{"thoughtful", []string{"drama", "science fiction", "mystery"}, nil},
}

// Moods lists the mood labels understood by MatchesMood.
func Moods() []string {
	out := make([]string, len(moodRules))
	for i, r := range moodRules {
		out[i] = r.mood
	}
	return out
}

// MatchesMood reports whether the movie satisfies at least one condition
// associated with the mood. Unknown moods match nothing.
func MatchesMood(m models.Movie, mood string) bool {
	for _, rule := range moodRules {
		if rule.mood != mood {
			continue
		}
		if genreFieldMatchesAny(m.Genres, rule.genres) {
			return true
		}
		text := strings.ToLower(m.Title + " " + m.Description)
		for _, t := range rule.texts {
			if strings.Contains(text, t) {
				return true
			}
		}
		return false
	}
	return false
}
