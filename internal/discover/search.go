package discover

import (
	"math"
	"sort"
	"strings"

	"movie-discovery-service/internal/models"
)

// RankedMovie is a movie plus its lexical relevance score.
type RankedMovie struct {
	models.Movie
	RelevanceScore float64 `json:"relevance_score"`
	Slug           string  `json:"slug"`
}

// SearchOptions narrows and reorders lexical search results.
// Zero values mean "no constraint" / default relevance ordering.
type SearchOptions struct {
	SortBy    string   // relevance (default), rating, year, popularity
	Genres    []string // post-score genre filter, any-match
	MinYear   int
	MaxYear   int
	MinRating float64
	MaxRating float64
}

// Search scores the corpus against a free-text query.
//
// An empty query returns an empty list. Candidates pass a broad recall-first
// gate (full-query substring across the text fields, or any 2+ char token in
// title/description/genres) before hard year/rating filters and scoring.
func Search(query string, corpus []models.Movie, limit int, opts SearchOptions) []RankedMovie {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []RankedMovie{}
	}

	var tokens []string
	for _, tok := range strings.Fields(q) {
		if len(tok) >= 2 {
			tokens = append(tokens, tok)
		}
	}

	results := make([]RankedMovie, 0, 16)
	for _, m := range corpus {
		if !isCandidate(m, q, tokens) {
			continue
		}
		if !passesRanges(m, opts) {
			continue
		}
		results = append(results, RankedMovie{
			Movie:          m,
			RelevanceScore: relevanceScore(m, q, tokens),
			Slug:           models.Slugify(m.Title),
		})
	}

	if len(opts.Genres) > 0 {
		filtered := results[:0]
		for _, r := range results {
			if genreFieldMatchesAny(r.Genres, opts.Genres) {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	sortRanked(results, opts.SortBy)

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func isCandidate(m models.Movie, q string, tokens []string) bool {
	title := strings.ToLower(m.Title)
	desc := strings.ToLower(m.Description)
	genres := strings.ToLower(m.Genres)

	if strings.Contains(title, q) ||
		strings.Contains(strings.ToLower(m.OriginalTitle), q) ||
		strings.Contains(desc, q) ||
		strings.Contains(genres, q) ||
		strings.Contains(strings.ToLower(m.Keywords), q) ||
		strings.Contains(strings.ToLower(m.ProductionCompanies), q) ||
		strings.Contains(strings.ToLower(m.SpokenLanguages), q) {
		return true
	}
	for _, tok := range tokens {
		if strings.Contains(title, tok) || strings.Contains(desc, tok) || strings.Contains(genres, tok) {
			return true
		}
	}
	return false
}

func passesRanges(m models.Movie, opts SearchOptions) bool {
	if opts.MinYear > 0 || opts.MaxYear > 0 {
		year, ok := m.ReleaseYear()
		if !ok {
			return false
		}
		if opts.MinYear > 0 && year < opts.MinYear {
			return false
		}
		if opts.MaxYear > 0 && year > opts.MaxYear {
			return false
		}
	}
	if opts.MinRating > 0 && m.VoteAverage < opts.MinRating {
		return false
	}
	if opts.MaxRating > 0 && m.VoteAverage > opts.MaxRating {
		return false
	}
	return true
}

// relevanceScore mixes an exclusive title cascade, additive field and
// per-token bonuses, and independently capped quality terms. A token can
// earn a bonus on top of the cascade that already matched it; that matches
// the ranking the site has always produced.
func relevanceScore(m models.Movie, q string, tokens []string) float64 {
	title := strings.ToLower(m.Title)
	desc := strings.ToLower(m.Description)
	genres := strings.ToLower(m.Genres)

	var score float64
	switch {
	case title == q:
		score += 100
	case strings.HasPrefix(title, q):
		score += 50
	case strings.Contains(title, q):
		score += 25
	}
	if strings.Contains(genres, q) {
		score += 15
	}
	if strings.Contains(desc, q) {
		score += 10
	}

	for _, tok := range tokens {
		if strings.Contains(title, tok) {
			score += 5
		}
		if strings.Contains(genres, tok) {
			score += 3
		}
		if strings.Contains(desc, tok) {
			score += 2
		}
	}

	score += math.Min(m.VoteAverage*2, 20)
	score += math.Min(m.Popularity/10, 10)
	score += math.Min(float64(m.VoteCount)/1000, 5)
	return score
}

func genreFieldMatchesAny(genreField string, wanted []string) bool {
	field := strings.ToLower(genreField)
	for _, g := range wanted {
		g = strings.ToLower(strings.TrimSpace(g))
		if g != "" && strings.Contains(field, g) {
			return true
		}
	}
	return false
}

func sortRanked(results []RankedMovie, sortBy string) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		switch sortBy {
		case "rating":
			if a.VoteAverage != b.VoteAverage {
				return a.VoteAverage > b.VoteAverage
			}
		case "year":
			at, bt := a.ReleaseTime(), b.ReleaseTime()
			if !at.Equal(bt) {
				return at.After(bt)
			}
		case "popularity":
			if a.Popularity != b.Popularity {
				return a.Popularity > b.Popularity
			}
		default:
			if a.RelevanceScore != b.RelevanceScore {
				return a.RelevanceScore > b.RelevanceScore
			}
		}
		return a.ID < b.ID
	})
}
