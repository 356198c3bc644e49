package models

import (
	"strings"
	"time"
	"unicode"
)

// Movie represents a movie stored in our database.
//
// Genres and Keywords are stored as comma-separated free text, exactly as
// they arrive from the upstream catalog. Consumers must normalize on use
// (see the discover package); the columns are never canonicalized at rest.
type Movie struct {
	ID                  int     `json:"id"`
	Title               string  `json:"title"`
	OriginalTitle       string  `json:"original_title"`
	Description         string  `json:"description"`
	Genres              string  `json:"genres"`
	Keywords            string  `json:"keywords"`
	ProductionCompanies string  `json:"production_companies"`
	SpokenLanguages     string  `json:"spoken_languages"`
	VoteAverage         float64 `json:"vote_average"`
	VoteCount           int     `json:"vote_count"`
	Popularity          float64 `json:"popularity"`
	ReleaseDate         string  `json:"release_date"`
	Runtime             int     `json:"runtime"`
	Adult               bool    `json:"adult"`
}

// ReleaseYear parses the release year out of ReleaseDate.
// A missing or malformed date reports ok=false; callers treat that as
// "fails any year constraint".
func (m Movie) ReleaseYear() (int, bool) {
	t, err := time.Parse("2006-01-02", m.ReleaseDate)
	if err != nil {
		return 0, false
	}
	return t.Year(), true
}

// ReleaseTime parses ReleaseDate for chronological sorting.
// Invalid dates return the zero time, which sorts last in descending order.
func (m Movie) ReleaseTime() time.Time {
	t, err := time.Parse("2006-01-02", m.ReleaseDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Slugify turns a title into a URL-safe slug.
func Slugify(title string) string {
	var b strings.Builder
	prevDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// MovieListItem is the response shape for movie listing.
type MovieListItem struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	ReleaseDate string  `json:"release_date"`
	Genres      string  `json:"genres"`
	VoteAverage float64 `json:"vote_average"`
	Popularity  float64 `json:"popularity"`
}

// MovieListResponse is the paginated movie listing response.
type MovieListResponse struct {
	Page         int             `json:"page"`
	PageSize     int             `json:"page_size"`
	TotalPages   int             `json:"total_pages"`
	TotalResults int             `json:"total_results"`
	Data         []MovieListItem `json:"data"`
}

// MovieListParams holds query parameters for movie listing.
type MovieListParams struct {
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	SortBy   string `query:"sort_by"`
	Order    string `query:"order"`
}

// Validate sets defaults and validates parameters.
func (p *MovieListParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
	validSorts := map[string]bool{"release_date": true, "title": true, "popularity": true, "vote_average": true}
	if !validSorts[p.SortBy] {
		p.SortBy = "popularity"
	}
	if p.Order != "asc" && p.Order != "desc" {
		p.Order = "desc"
	}
}
