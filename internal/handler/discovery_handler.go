package handler

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-discovery-service/internal/discover"
	"movie-discovery-service/internal/models"
	"movie-discovery-service/internal/service"
)

// DiscoveryHandler handles HTTP requests for the discovery endpoints.
type DiscoveryHandler struct {
	svc *service.DiscoveryService
}

// NewDiscoveryHandler creates a new DiscoveryHandler.
func NewDiscoveryHandler(svc *service.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{svc: svc}
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *DiscoveryHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-discovery-service",
	})
}

// ListMovies returns a paginated list of movies.
// @Summary List movies
// @Tags movies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Param sort_by query string false "Sort field" Enums(release_date,title,popularity,vote_average) default(popularity)
// @Param order query string false "Sort order" Enums(asc,desc) default(desc)
// @Success 200 {object} models.MovieListResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies [get]
func (h *DiscoveryHandler) ListMovies(c fiber.Ctx) error {
	params := models.MovieListParams{
		Page:     fiber.Query(c, "page", 1),
		PageSize: fiber.Query(c, "page_size", 20),
		SortBy:   c.Query("sort_by", "popularity"),
		Order:    c.Query("order", "desc"),
	}

	result, err := h.svc.ListMovies(c.Context(), params)
	if err != nil {
		slog.Error("failed to list movies", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to retrieve movies",
		})
	}
	return c.JSON(result)
}

// GetMovie returns a single movie by ID.
// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} models.Movie
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id} [get]
func (h *DiscoveryHandler) GetMovie(c fiber.Ctx) error {
	id := fiber.Params[int](c, "id")
	if id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	movie, err := h.svc.GetMovie(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "movie not found"})
		}
		slog.Error("failed to get movie", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to retrieve movie",
		})
	}
	return c.JSON(movie)
}

// Similar returns movies similar to the given one.
// @Summary Similar movies
// @Tags discover
// @Produce json
// @Param id path int true "Movie ID"
// @Param limit query int false "Max results" default(10)
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id}/similar [get]
func (h *DiscoveryHandler) Similar(c fiber.Ctx) error {
	id := fiber.Params[int](c, "id")
	if id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}
	limit := clampLimit(fiber.Query(c, "limit", 10))

	result, err := h.svc.Similar(c.Context(), id, limit)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "movie not found"})
		}
		slog.Error("failed to rank similar movies", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to find similar movies",
		})
	}
	return c.JSON(fiber.Map{"movie_id": id, "results": result})
}

// Search runs the lexical relevance engine.
// @Summary Search movies
// @Tags discover
// @Produce json
// @Param q query string true "Free-text query"
// @Param limit query int false "Max results" default(20)
// @Param sort_by query string false "Sort override" Enums(relevance,rating,year,popularity) default(relevance)
// @Param genres query string false "Comma-separated genre filter"
// @Param min_year query int false "Earliest release year"
// @Param max_year query int false "Latest release year"
// @Param min_rating query number false "Minimum vote average"
// @Param max_rating query number false "Maximum vote average"
// @Success 200 {object} map[string]interface{}
// @Router /search [get]
func (h *DiscoveryHandler) Search(c fiber.Ctx) error {
	query := c.Query("q")
	limit := clampLimit(fiber.Query(c, "limit", 20))
	opts := discover.SearchOptions{
		SortBy:    c.Query("sort_by", "relevance"),
		Genres:    splitCSV(c.Query("genres")),
		MinYear:   fiber.Query(c, "min_year", 0),
		MaxYear:   fiber.Query(c, "max_year", 0),
		MinRating: fiber.Query(c, "min_rating", 0.0),
		MaxRating: fiber.Query(c, "max_rating", 0.0),
	}

	result, err := h.svc.Search(c.Context(), query, limit, opts)
	if err != nil {
		slog.Error("search failed", "query", query, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "search failed"})
	}
	return c.JSON(fiber.Map{"query": query, "results": result})
}

// SemanticSearch runs the semantic query interpreter.
// @Summary Semantic search
// @Tags discover
// @Produce json
// @Param q query string true "Natural-language query"
// @Param limit query int false "Max results" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /search/semantic [get]
func (h *DiscoveryHandler) SemanticSearch(c fiber.Ctx) error {
	query := c.Query("q")
	limit := clampLimit(fiber.Query(c, "limit", 20))

	result, err := h.svc.SemanticSearch(c.Context(), query, limit)
	if err != nil {
		slog.Error("semantic search failed", "query", query, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "search failed"})
	}
	return c.JSON(fiber.Map{"query": query, "results": result})
}

// Pick returns a quality-bounded random selection under query-param filters.
// @Summary Pick movies
// @Tags discover
// @Produce json
// @Param limit query int false "Max results" default(10)
// @Param genres query string false "Comma-separated genre filter"
// @Param min_rating query number false "Minimum vote average"
// @Param min_year query int false "Earliest release year"
// @Param max_year query int false "Latest release year"
// @Param min_runtime query int false "Minimum runtime minutes"
// @Param max_runtime query int false "Maximum runtime minutes"
// @Param exclude_adult query bool false "Exclude adult titles"
// @Success 200 {object} map[string]interface{}
// @Router /discover/pick [get]
func (h *DiscoveryHandler) Pick(c fiber.Ctx) error {
	limit := clampLimit(fiber.Query(c, "limit", 10))
	filters := discover.Filters{
		Genres:        splitCSV(c.Query("genres")),
		MinRating:     fiber.Query(c, "min_rating", 0.0),
		MaxRating:     fiber.Query(c, "max_rating", 0.0),
		MinYear:       fiber.Query(c, "min_year", 0),
		MaxYear:       fiber.Query(c, "max_year", 0),
		MinRuntime:    fiber.Query(c, "min_runtime", 0),
		MaxRuntime:    fiber.Query(c, "max_runtime", 0),
		ExcludeAdult:  fiber.Query(c, "exclude_adult", false),
		MinPopularity: fiber.Query(c, "min_popularity", 0.0),
	}

	result, err := h.svc.Pick(c.Context(), filters, discover.PickOptions{Limit: limit})
	if err != nil {
		slog.Error("pick failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "pick failed"})
	}
	if len(result) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "no movies found"})
	}
	return c.JSON(fiber.Map{"results": result})
}

// Random returns a quality-bounded random selection with no filters.
// @Summary Random movies
// @Tags discover
// @Produce json
// @Param limit query int false "Max results" default(1)
// @Success 200 {object} map[string]interface{}
// @Router /discover/random [get]
func (h *DiscoveryHandler) Random(c fiber.Ctx) error {
	limit := clampLimit(fiber.Query(c, "limit", 1))

	result, err := h.svc.Pick(c.Context(), discover.Filters{ExcludeAdult: true}, discover.PickOptions{Limit: limit})
	if err != nil {
		slog.Error("random pick failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "pick failed"})
	}
	if len(result) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "no movies found"})
	}
	return c.JSON(fiber.Map{"results": result})
}

// Mood returns movies matching a mood label.
// @Summary Mood finder
// @Tags discover
// @Produce json
// @Param mood path string true "Mood" Enums(happy,romantic,intense,thoughtful)
// @Param limit query int false "Max results" default(10)
// @Param min_rating query number false "Minimum vote average"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /discover/mood/{mood} [get]
func (h *DiscoveryHandler) Mood(c fiber.Ctx) error {
	mood := strings.ToLower(c.Params("mood"))
	if !validMood(mood) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "unknown mood"})
	}
	limit := clampLimit(fiber.Query(c, "limit", 10))
	filters := discover.Filters{
		MinRating:    fiber.Query(c, "min_rating", 0.0),
		ExcludeAdult: true,
	}

	result, err := h.svc.PickByMood(c.Context(), mood, filters, discover.PickOptions{Limit: limit})
	if err != nil {
		slog.Error("mood pick failed", "mood", mood, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "pick failed"})
	}
	if len(result) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "no movies found"})
	}
	return c.JSON(fiber.Map{"mood": mood, "results": result})
}

// DateNight picks movies two moods can agree on.
// @Summary Date night picks
// @Tags discover
// @Produce json
// @Param mood_a query string false "First mood" Enums(happy,romantic,intense,thoughtful)
// @Param mood_b query string false "Second mood" Enums(happy,romantic,intense,thoughtful)
// @Param limit query int false "Max results" default(5)
// @Success 200 {object} map[string]interface{}
// @Router /discover/date-night [get]
func (h *DiscoveryHandler) DateNight(c fiber.Ctx) error {
	prefs := service.DateNightPreferences{
		MoodA:     strings.ToLower(c.Query("mood_a", "romantic")),
		MoodB:     strings.ToLower(c.Query("mood_b")),
		Genres:    splitCSV(c.Query("genres")),
		MinRating: fiber.Query(c, "min_rating", 0.0),
		MinYear:   fiber.Query(c, "min_year", 0),
		MaxYear:   fiber.Query(c, "max_year", 0),
	}
	if !validMood(prefs.MoodA) || (prefs.MoodB != "" && !validMood(prefs.MoodB)) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "unknown mood"})
	}
	limit := clampLimit(fiber.Query(c, "limit", 5))

	result, err := h.svc.DateNight(c.Context(), prefs, limit)
	if err != nil {
		slog.Error("date night pick failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "pick failed"})
	}
	if len(result) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "no movies found"})
	}
	return c.JSON(fiber.Map{"results": result})
}

// Recommend picks movies from a structured preference object.
// @Summary Recommendations
// @Tags discover
// @Accept json
// @Produce json
// @Param preferences body service.RecommendationPreferences true "Preferences"
// @Param limit query int false "Max results" default(10)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /discover/recommend [post]
func (h *DiscoveryHandler) Recommend(c fiber.Ctx) error {
	var prefs service.RecommendationPreferences
	if err := c.Bind().Body(&prefs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid preferences payload"})
	}
	limit := clampLimit(fiber.Query(c, "limit", 10))

	result, err := h.svc.Recommend(c.Context(), prefs, limit)
	if err != nil {
		slog.Error("recommend failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "recommendation failed"})
	}
	if len(result) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "no movies found"})
	}
	return c.JSON(fiber.Map{"results": result})
}

// SeedMovies upserts a batch of movies.
// @Summary Seed movies
// @Tags admin
// @Accept json
// @Produce json
// @Param movies body []models.Movie true "Movies to upsert"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /admin/movies [post]
func (h *DiscoveryHandler) SeedMovies(c fiber.Ctx) error {
	var movies []models.Movie
	if err := c.Bind().Body(&movies); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movies payload"})
	}

	count, err := h.svc.SeedMovies(c.Context(), movies)
	if err != nil {
		slog.Error("seed failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "seed failed"})
	}
	return c.JSON(fiber.Map{"message": "seed completed", "movies_upserted": count})
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > 50 {
		return 50
	}
	return limit
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validMood(mood string) bool {
	for _, m := range discover.Moods() {
		if m == mood {
			return true
		}
	}
	return false
}
