package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"movie-discovery-service/internal/config"
)

// NewPostgres creates a new PostgreSQL connection and runs migrations.
func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS movies (
			id SERIAL PRIMARY KEY,
			title VARCHAR(500) NOT NULL,
			original_title VARCHAR(500) DEFAULT '',
			description TEXT DEFAULT '',
			genres TEXT DEFAULT '',
			keywords TEXT DEFAULT '',
			production_companies TEXT DEFAULT '',
			spoken_languages TEXT DEFAULT '',
			vote_average DOUBLE PRECISION DEFAULT 0,
			vote_count INTEGER DEFAULT 0,
			popularity DOUBLE PRECISION DEFAULT 0,
			release_date DATE,
			runtime INTEGER DEFAULT 0,
			adult BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_movies_title_release
			ON movies(title, COALESCE(release_date, '0001-01-01'::date))`,
		// Indexes for common query patterns
		`CREATE INDEX IF NOT EXISTS idx_movies_release_date ON movies(release_date)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_popularity ON movies(popularity)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_vote_average ON movies(vote_average)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
