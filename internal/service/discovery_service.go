package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"movie-discovery-service/internal/discover"
	"movie-discovery-service/internal/models"
	"movie-discovery-service/internal/repository"
)

const (
	corpusCacheKey  = "movies:corpus"
	corpusCacheTTL  = 5 * time.Minute
	listCacheTTL    = 5 * time.Minute
	similarCacheTTL = 10 * time.Minute
)

// ErrMovieNotFound reports a missing movie ID.
var ErrMovieNotFound = errors.New("movie not found")

// DiscoveryService orchestrates the corpus snapshot and the discovery
// engines. All scoring is computed per request; scores are never persisted.
type DiscoveryService struct {
	repo  *repository.MovieRepository
	redis *redis.Client
}

// NewDiscoveryService creates a new DiscoveryService.
func NewDiscoveryService(repo *repository.MovieRepository, rdb *redis.Client) *DiscoveryService {
	return &DiscoveryService{repo: repo, redis: rdb}
}

// Corpus returns the full movie list, cache-fronted. The returned slice is
// handed to the discovery engines as an immutable snapshot.
func (s *DiscoveryService) Corpus(ctx context.Context) ([]models.Movie, error) {
	if cached, err := s.getFromCache(ctx, corpusCacheKey); err == nil {
		var movies []models.Movie
		if json.Unmarshal([]byte(cached), &movies) == nil {
			slog.Debug("cache hit", "key", corpusCacheKey)
			return movies, nil
		}
	}

	movies, err := s.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	if data, err := json.Marshal(movies); err == nil {
		s.setCache(ctx, corpusCacheKey, string(data), corpusCacheTTL)
	}
	return movies, nil
}

// Similar returns movies ranked by similarity against the given movie.
func (s *DiscoveryService) Similar(ctx context.Context, movieID, limit int) ([]discover.SimilarMovie, error) {
	cacheKey := fmt.Sprintf("movies:similar:%d:%d", movieID, limit)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		var result []discover.SimilarMovie
		if json.Unmarshal([]byte(cached), &result) == nil {
			slog.Debug("cache hit", "key", cacheKey)
			return result, nil
		}
	}

	target, err := s.repo.GetByID(movieID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	corpus, err := s.Corpus(ctx)
	if err != nil {
		return nil, err
	}

	result := discover.RankSimilar(*target, corpus, limit)
	if data, err := json.Marshal(result); err == nil {
		s.setCache(ctx, cacheKey, string(data), similarCacheTTL)
	}
	return result, nil
}

// Search runs the lexical relevance engine over the corpus.
func (s *DiscoveryService) Search(ctx context.Context, query string, limit int, opts discover.SearchOptions) ([]discover.RankedMovie, error) {
	corpus, err := s.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	return discover.Search(query, corpus, limit, opts), nil
}

// SemanticSearch runs the semantic query interpreter over the corpus.
func (s *DiscoveryService) SemanticSearch(ctx context.Context, query string, limit int) ([]discover.SemanticMovie, error) {
	corpus, err := s.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	return discover.SemanticSearch(query, corpus, limit), nil
}

// Pick runs the score-then-shuffle picker with the given filters.
func (s *DiscoveryService) Pick(ctx context.Context, filters discover.Filters, opts discover.PickOptions) ([]discover.PickedMovie, error) {
	corpus, err := s.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	return discover.Pick(corpus, filters, opts), nil
}

// PickByMood runs the mood finder.
func (s *DiscoveryService) PickByMood(ctx context.Context, mood string, filters discover.Filters, opts discover.PickOptions) ([]discover.MoodMovie, error) {
	corpus, err := s.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	return discover.PickByMood(corpus, mood, filters, opts), nil
}

// DateNightPreferences describes what each side of a date night wants.
type DateNightPreferences struct {
	MoodA     string   `json:"mood_a"`
	MoodB     string   `json:"mood_b"`
	Genres    []string `json:"genres"`
	MinRating float64  `json:"min_rating"`
	MaxYear   int      `json:"max_year"`
	MinYear   int      `json:"min_year"`
}

// DateNight picks movies both moods can agree on: candidates must match
// every supplied mood, with a quality floor so nobody settles.
func (s *DiscoveryService) DateNight(ctx context.Context, prefs DateNightPreferences, limit int) ([]discover.PickedMovie, error) {
	corpus, err := s.Corpus(ctx)
	if err != nil {
		return nil, err
	}

	candidates := corpus
	for _, mood := range []string{prefs.MoodA, prefs.MoodB} {
		if mood == "" {
			continue
		}
		matching := make([]models.Movie, 0, len(candidates))
		for _, m := range candidates {
			if discover.MatchesMood(m, mood) {
				matching = append(matching, m)
			}
		}
		candidates = matching
	}
	if len(candidates) == 0 {
		// Nothing satisfies both moods; let the picker relax over the corpus.
		candidates = corpus
	}

	minRating := prefs.MinRating
	if minRating == 0 {
		minRating = 6.5
	}
	filters := discover.Filters{
		Genres:       prefs.Genres,
		MinRating:    minRating,
		MinYear:      prefs.MinYear,
		MaxYear:      prefs.MaxYear,
		ExcludeAdult: true,
	}
	return discover.Pick(candidates, filters, discover.PickOptions{Limit: limit}), nil
}

// RecommendationPreferences is the structured preference object for the
// recommendation picker. Nothing here is stored; it arrives per request.
type RecommendationPreferences struct {
	Genres        []string `json:"genres"`
	MinRating     float64  `json:"min_rating"`
	MinYear       int      `json:"min_year"`
	MaxYear       int      `json:"max_year"`
	MaxRuntime    int      `json:"max_runtime"`
	MinRuntime    int      `json:"min_runtime"`
	ExcludeAdult  bool     `json:"exclude_adult"`
	MinPopularity float64  `json:"min_popularity"`
}

// Recommend picks movies matching a structured preference object, with a
// per-genre bonus so stated tastes rank first inside the quality window.
func (s *DiscoveryService) Recommend(ctx context.Context, prefs RecommendationPreferences, limit int) ([]discover.PickedMovie, error) {
	filters := discover.Filters{
		Genres:        prefs.Genres,
		MinRating:     prefs.MinRating,
		MinYear:       prefs.MinYear,
		MaxYear:       prefs.MaxYear,
		MinRuntime:    prefs.MinRuntime,
		MaxRuntime:    prefs.MaxRuntime,
		ExcludeAdult:  prefs.ExcludeAdult,
		MinPopularity: prefs.MinPopularity,
	}
	return s.Pick(ctx, filters, discover.PickOptions{Limit: limit, BonusGenres: prefs.Genres})
}

// ListMovies returns a paginated list of movies, cache-fronted.
func (s *DiscoveryService) ListMovies(ctx context.Context, params models.MovieListParams) (*models.MovieListResponse, error) {
	params.Validate()

	cacheKey := fmt.Sprintf("movies:list:%d:%d:%s:%s", params.Page, params.PageSize, params.SortBy, params.Order)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		var result models.MovieListResponse
		if json.Unmarshal([]byte(cached), &result) == nil {
			slog.Debug("cache hit", "key", cacheKey)
			return &result, nil
		}
	}

	result, err := s.repo.List(params)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	if data, err := json.Marshal(result); err == nil {
		s.setCache(ctx, cacheKey, string(data), listCacheTTL)
	}
	return result, nil
}

// GetMovie returns a single movie by ID.
func (s *DiscoveryService) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	movie, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movie, nil
}

// SeedMovies upserts a batch of movies and invalidates derived caches.
func (s *DiscoveryService) SeedMovies(ctx context.Context, movies []models.Movie) (int, error) {
	count := 0
	for i := range movies {
		if movies[i].Title == "" {
			continue
		}
		if _, err := s.repo.Upsert(&movies[i]); err != nil {
			slog.Error("failed to upsert movie", "title", movies[i].Title, "error", err)
			continue
		}
		count++
	}
	s.invalidateCache(ctx)
	slog.Info("seeded movies", "count", count)
	return count, nil
}

// ---- Redis Helpers ----

func (s *DiscoveryService) getFromCache(ctx context.Context, key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(ctx, key).Result()
}

func (s *DiscoveryService) setCache(ctx context.Context, key, value string, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

func (s *DiscoveryService) invalidateCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	iter := s.redis.Scan(ctx, 0, "movies:*", 0).Iterator()
	for iter.Next(ctx) {
		s.redis.Del(ctx, iter.Val())
	}
	slog.Info("Redis cache invalidated")
}
