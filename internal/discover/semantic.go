package discover

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"movie-discovery-service/internal/models"
)

// SemanticMovie is a movie plus its semantic relevance score.
type SemanticMovie struct {
	models.Movie
	SemanticScore float64 `json:"semantic_score"`
	Slug          string  `json:"slug"`
}

// triggerSet maps a canonical label to the words and phrases that imply it.
// Kept as plain data so the dictionaries stay independently testable and
// extensible without touching the interpreter.
type triggerSet struct {
	label    string
	triggers []string
}

var genreTriggers = []triggerSet{
	{"action", []string{"action", "adventure", "fight", "battle", "war", "spy", "hero"}},
	{"comedy", []string{"comedy", "funny", "laugh", "hilarious", "humor", "silly"}},
	{"drama", []string{"drama", "emotional", "moving", "tearjerker", "serious"}},
	{"horror", []string{"horror", "scary", "frightening", "terrifying", "creepy", "haunted"}},
	{"romance", []string{"romance", "romantic", "love story", "relationship"}},
	{"science fiction", []string{"sci-fi", "scifi", "science fiction", "space", "alien", "future", "robot"}},
	{"thriller", []string{"thriller", "suspense", "mystery", "twist", "crime"}},
	{"animation", []string{"animation", "animated", "cartoon", "pixar", "anime"}},
	{"family", []string{"family", "kids", "children"}},
	{"fantasy", []string{"fantasy", "magic", "magical", "wizard", "dragon", "mythical"}},
	{"documentary", []string{"documentary", "true story", "real life"}},
	{"western", []string{"western", "cowboy", "frontier"}},
}

var decadeTriggers = []struct {
	label    string
	start    int
	triggers []string
}{
	{"60s", 1960, []string{"60s", "sixties", "1960s"}},
	{"70s", 1970, []string{"70s", "seventies", "1970s"}},
	{"80s", 1980, []string{"80s", "eighties", "1980s"}},
	{"90s", 1990, []string{"90s", "nineties", "1990s"}},
	{"2000s", 2000, []string{"2000s", "noughties"}},
	{"2010s", 2010, []string{"2010s", "twenty tens"}},
}

var moodTriggers = []triggerSet{
	{"feel_good", []string{"feel good", "feel-good", "uplifting", "heartwarming", "wholesome", "cheerful"}},
	{"dark", []string{"dark", "gritty", "bleak", "disturbing", "intense"}},
	{"light", []string{"light", "lighthearted", "easy watch", "fun", "casual"}},
	{"epic", []string{"epic", "grand", "sweeping", "spectacle"}},
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// querySignal is the structured interpretation of a natural-language query.
type querySignal struct {
	genres    []string
	yearStart int
	yearEnd   int
	moods     []string
}

func (s querySignal) structured() bool {
	return len(s.genres) > 0 || s.yearStart > 0
}

func interpretQuery(q string) querySignal {
	var sig querySignal

	for _, g := range genreTriggers {
		for _, trigger := range g.triggers {
			if strings.Contains(q, trigger) {
				sig.genres = append(sig.genres, g.label)
				break
			}
		}
	}

	for _, d := range decadeTriggers {
		for _, trigger := range d.triggers {
			if strings.Contains(q, trigger) {
				sig.yearStart = d.start
				sig.yearEnd = d.start + 9
				break
			}
		}
		if sig.yearStart > 0 {
			break
		}
	}

	// A literal year beats any decade phrase; first match wins.
	if match := yearPattern.FindString(q); match != "" {
		year, _ := strconv.Atoi(match)
		sig.yearStart = year - 2
		sig.yearEnd = year + 2
	}

	for _, m := range moodTriggers {
		for _, trigger := range m.triggers {
			if strings.Contains(q, trigger) {
				sig.moods = append(sig.moods, m.label)
				break
			}
		}
	}

	return sig
}

// SemanticSearch interprets a natural-language query into structured genre,
// year window, and mood signals, then filters and scores the corpus.
//
// Queries with no structured signal, and structured filters that match
// nothing, both degrade to the lexical engine rather than returning nothing.
func SemanticSearch(query string, corpus []models.Movie, limit int) []SemanticMovie {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []SemanticMovie{}
	}

	sig := interpretQuery(q)
	if !sig.structured() {
		return lexicalFallback(query, corpus, limit)
	}

	results := make([]SemanticMovie, 0, 16)
	for _, m := range corpus {
		if len(sig.genres) > 0 && !genreFieldMatchesAny(m.Genres, sig.genres) {
			continue
		}
		if sig.yearStart > 0 {
			year, ok := m.ReleaseYear()
			if !ok || year < sig.yearStart || year > sig.yearEnd {
				continue
			}
		}
		results = append(results, SemanticMovie{
			Movie:         m,
			SemanticScore: semanticScore(m, sig),
			Slug:          models.Slugify(m.Title),
		})
	}

	if len(results) == 0 {
		return lexicalFallback(query, corpus, limit)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].SemanticScore != results[j].SemanticScore {
			return results[i].SemanticScore > results[j].SemanticScore
		}
		return results[i].ID < results[j].ID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func semanticScore(m models.Movie, sig querySignal) float64 {
	score := m.VoteAverage * 5

	genreField := strings.ToLower(m.Genres)
	for _, g := range sig.genres {
		if strings.Contains(genreField, g) {
			score += 20
		}
	}

	desc := strings.ToLower(m.Description)
	for _, mood := range sig.moods {
		switch mood {
		case "feel_good":
			if strings.Contains(desc, "uplifting") || strings.Contains(desc, "heartwarming") {
				score += 15
			}
		case "dark":
			if strings.Contains(desc, "dark") || strings.Contains(desc, "intense") {
				score += 15
			}
		}
	}

	score += math.Min(m.Popularity/10, 10)
	return score
}

func lexicalFallback(query string, corpus []models.Movie, limit int) []SemanticMovie {
	lexical := Search(query, corpus, limit, SearchOptions{})
	out := make([]SemanticMovie, len(lexical))
	for i, r := range lexical {
		out[i] = SemanticMovie{Movie: r.Movie, SemanticScore: r.RelevanceScore, Slug: r.Slug}
	}
	return out
}
