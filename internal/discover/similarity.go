package discover

import (
	"math"
	"sort"

	"movie-discovery-service/internal/models"
)

const (
	genreWeight   = 0.6
	keywordWeight = 0.4
)

// SimilarMovie is a movie plus its computed similarity against a target.
type SimilarMovie struct {
	models.Movie
	Similarity float64 `json:"similarity"`
}

// jaccard computes |intersection| / |union| of two token sets.
// Two empty sets have similarity 0 by convention.
func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Similarity scores how alike two movies are, in [0,1].
//
// Genre and keyword overlap dominate; quality (rating and popularity) only
// scales the overlap score between 70% and 100% of itself, so two acclaimed
// movies with nothing in common still score 0.
func Similarity(a, b models.Movie) float64 {
	genreSim := jaccard(TokenSet(a.Genres), TokenSet(b.Genres))
	keywordSim := jaccard(TokenSet(a.Keywords), TokenSet(b.Keywords))
	base := genreWeight*genreSim + keywordWeight*keywordSim

	quality := (a.VoteAverage/10 +
		b.VoteAverage/10 +
		math.Min(a.Popularity/100, 1) +
		math.Min(b.Popularity/100, 1)) / 4

	return base * (0.7 + 0.3*quality)
}

// RankSimilar ranks the corpus against the target movie.
//
// The target itself is excluded by ID, movies with zero overlap are dropped
// as noise, and equal scores tie-break on ascending ID so the ranking stays
// stable regardless of corpus row order.
func RankSimilar(target models.Movie, corpus []models.Movie, limit int) []SimilarMovie {
	ranked := make([]SimilarMovie, 0, len(corpus))
	for _, m := range corpus {
		if m.ID == target.ID {
			continue
		}
		score := Similarity(target, m)
		if score == 0 {
			continue
		}
		ranked = append(ranked, SimilarMovie{Movie: m, Similarity: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Similarity != ranked[j].Similarity {
			return ranked[i].Similarity > ranked[j].Similarity
		}
		return ranked[i].ID < ranked[j].ID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
