package repository

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"movie-discovery-service/internal/models"
)

// MovieRepository handles database operations for movies.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository.
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

const movieColumns = `id, title, COALESCE(original_title, ''), COALESCE(description, ''),
	COALESCE(genres, ''), COALESCE(keywords, ''),
	COALESCE(production_companies, ''), COALESCE(spoken_languages, ''),
	vote_average, vote_count, popularity,
	COALESCE(TO_CHAR(release_date, 'YYYY-MM-DD'), ''),
	runtime, adult`

func scanMovie(row interface{ Scan(...any) error }) (models.Movie, error) {
	var m models.Movie
	err := row.Scan(
		&m.ID, &m.Title, &m.OriginalTitle, &m.Description,
		&m.Genres, &m.Keywords,
		&m.ProductionCompanies, &m.SpokenLanguages,
		&m.VoteAverage, &m.VoteCount, &m.Popularity,
		&m.ReleaseDate, &m.Runtime, &m.Adult,
	)
	return m, err
}

// ListAll returns the entire movie corpus ordered by ID.
// The discovery engines treat this slice as an immutable snapshot.
func (r *MovieRepository) ListAll() ([]models.Movie, error) {
	rows, err := r.db.Query(fmt.Sprintf(`SELECT %s FROM movies ORDER BY id`, movieColumns))
	if err != nil {
		return nil, fmt.Errorf("corpus query failed: %w", err)
	}
	defer rows.Close()

	movies := make([]models.Movie, 0, 256)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			slog.Error("failed to scan movie row", "error", err)
			continue
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// GetByID returns a single movie by internal ID.
func (r *MovieRepository) GetByID(id int) (*models.Movie, error) {
	row := r.db.QueryRow(fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns), id)
	m, err := scanMovie(row)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns a paginated list of movies.
func (r *MovieRepository) List(params models.MovieListParams) (*models.MovieListResponse, error) {
	var totalResults int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM movies`).Scan(&totalResults); err != nil {
		return nil, fmt.Errorf("count query failed: %w", err)
	}

	// Sort column is validated by params.Validate, never raw user input.
	sortColumn := params.SortBy
	orderDir := "DESC"
	if params.Order == "asc" {
		orderDir = "ASC"
	}

	offset := (params.Page - 1) * params.PageSize
	totalPages := 0
	if totalResults > 0 {
		totalPages = (totalResults + params.PageSize - 1) / params.PageSize
	}

	listQuery := fmt.Sprintf(`
		SELECT id, title,
			COALESCE(TO_CHAR(release_date, 'YYYY-MM-DD'), '') as release_date,
			COALESCE(genres, ''), vote_average, popularity
		FROM movies
		ORDER BY %s %s NULLS LAST
		LIMIT $1 OFFSET $2
	`, sortColumn, orderDir)

	rows, err := r.db.Query(listQuery, params.PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", err)
	}
	defer rows.Close()

	items := make([]models.MovieListItem, 0)
	for rows.Next() {
		var item models.MovieListItem
		if err := rows.Scan(&item.ID, &item.Title, &item.ReleaseDate, &item.Genres, &item.VoteAverage, &item.Popularity); err != nil {
			slog.Error("failed to scan movie row", "error", err)
			continue
		}
		item.Slug = models.Slugify(item.Title)
		items = append(items, item)
	}

	return &models.MovieListResponse{
		Page:         params.Page,
		PageSize:     params.PageSize,
		TotalPages:   totalPages,
		TotalResults: totalResults,
		Data:         items,
	}, nil
}

// Upsert inserts or updates a movie keyed on (title, release_date).
func (r *MovieRepository) Upsert(m *models.Movie) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO movies (title, original_title, description, genres, keywords,
			production_companies, spoken_languages, vote_average, vote_count,
			popularity, release_date, runtime, adult, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::date, $12, $13, $14)
		ON CONFLICT (title, COALESCE(release_date, '0001-01-01'::date)) DO UPDATE SET
			original_title = EXCLUDED.original_title,
			description = EXCLUDED.description,
			genres = EXCLUDED.genres,
			keywords = EXCLUDED.keywords,
			production_companies = EXCLUDED.production_companies,
			spoken_languages = EXCLUDED.spoken_languages,
			vote_average = EXCLUDED.vote_average,
			vote_count = EXCLUDED.vote_count,
			popularity = EXCLUDED.popularity,
			runtime = EXCLUDED.runtime,
			adult = EXCLUDED.adult,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`, m.Title, m.OriginalTitle, m.Description, m.Genres, m.Keywords,
		m.ProductionCompanies, m.SpokenLanguages, m.VoteAverage, m.VoteCount,
		m.Popularity, nullableDate(m.ReleaseDate), m.Runtime, m.Adult, time.Now()).Scan(&id)
	return id, err
}

func nullableDate(dateStr string) interface{} {
	if dateStr == "" {
		return nil
	}
	return dateStr
}
