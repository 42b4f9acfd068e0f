package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinevault/cinevault/internal/domain"
)

// ReferencesRepository provides read access to the reference collections
// populated by the seeding pipeline.
type ReferencesRepository struct {
	pool *pgxpool.Pool
}

// ListGenres returns every genre ordered by name.
func (r *ReferencesRepository) ListGenres(ctx context.Context) ([]domain.Reference, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	var genres []domain.Reference
	for rows.Next() {
		var ref domain.Reference
		if err := rows.Scan(&ref.ID, &ref.Key); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, ref)
	}
	return genres, rows.Err()
}

// CountMovies returns the total number of movies in the catalog.
func (r *ReferencesRepository) CountMovies(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return count, nil
}
