package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinevault/cinevault/internal/domain"
)

// Options tunes a seeding run.
type Options struct {
	// ChunkSize bounds rows per bulk statement; defaults to DefaultChunkSize.
	ChunkSize int
	// WriteBack persists the normalized CSV over the source file.
	WriteBack bool
	Logger    *log.Logger
}

// Seeder populates an empty database from the movies CSV: reference
// entities, movies and their join rows land in one transaction, or not at
// all. A populated database makes Run a no-op.
type Seeder struct {
	pool        *pgxpool.Pool
	datasetPath string
	opts        Options
}

// New constructs a Seeder reading from datasetPath and writing through pool.
func New(pool *pgxpool.Pool, datasetPath string, opts Options) *Seeder {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Seeder{pool: pool, datasetPath: datasetPath, opts: opts}
}

// Run executes the pipeline. It returns nil both on a successful seeding
// run and when the database is already populated; any failure rolls the
// whole run back and is returned to the caller.
func (s *Seeder) Run(ctx context.Context) error {
	populated, err := NewPgStore(s.pool).HasMovies(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if populated {
		s.opts.Logger.Println("seed: database already populated, skipping")
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("seed: begin transaction: %w", err)
	}
	// Rollback is a no-op once the transaction commits; every other exit
	// path unwinds the whole run.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.seed(ctx, NewPgStore(tx)); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	s.opts.Logger.Println("seed: completed")
	return nil
}

// seed runs every pipeline stage against st, which must be scoped to one
// transaction.
func (s *Seeder) seed(ctx context.Context, st Store) error {
	if err := s.seedUserGroups(ctx, st); err != nil {
		return err
	}

	raws, err := LoadCSV(s.datasetPath)
	if err != nil {
		return err
	}
	ds, err := Normalize(raws)
	if err != nil {
		return err
	}
	s.opts.Logger.Printf("seed: normalized %d dataset rows", len(ds.Rows))

	if s.opts.WriteBack {
		if err := ds.WriteCSV(s.datasetPath); err != nil {
			return err
		}
	}

	resolver := NewResolver(st, s.opts.ChunkSize)
	countries, err := resolver.Resolve(ctx, domain.RefCountry, ds.Countries())
	if err != nil {
		return err
	}
	genres, err := resolver.Resolve(ctx, domain.RefGenre, ds.Genres())
	if err != nil {
		return err
	}
	actors, err := resolver.Resolve(ctx, domain.RefActor, ds.Actors())
	if err != nil {
		return err
	}
	languages, err := resolver.Resolve(ctx, domain.RefLanguage, ds.Languages())
	if err != nil {
		return err
	}

	movieRows, err := buildMovieRows(ds, countries)
	if err != nil {
		return err
	}

	writer := NewWriter(st, s.opts.ChunkSize)
	movieIDs, err := writer.WriteMovies(ctx, movieRows)
	if err != nil {
		return err
	}
	s.opts.Logger.Printf("seed: inserted %d movies", len(movieIDs))

	assocs, err := BuildAssociations(ds, movieIDs, ReferenceMaps{
		Genres:    genres,
		Actors:    actors,
		Languages: languages,
	})
	if err != nil {
		return err
	}

	if err := writer.WriteAssociations(ctx, AssocGenres, assocs.Genres); err != nil {
		return err
	}
	if err := writer.WriteAssociations(ctx, AssocActors, assocs.Actors); err != nil {
		return err
	}
	if err := writer.WriteAssociations(ctx, AssocLanguages, assocs.Languages); err != nil {
		return err
	}
	return nil
}

// seedUserGroups creates the default user groups once, inside the same
// transaction as the rest of the run.
func (s *Seeder) seedUserGroups(ctx context.Context, st Store) error {
	count, err := st.CountGroups(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := st.InsertGroups(ctx, domain.UserGroups); err != nil {
		return err
	}
	s.opts.Logger.Printf("seed: created %d default user groups", len(domain.UserGroups))
	return nil
}

// buildMovieRows converts normalized dataset rows into insertable records,
// attaching the resolved country identifier.
func buildMovieRows(ds *Dataset, countries map[string]int64) ([]MovieRow, error) {
	rows := make([]MovieRow, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		countryID, ok := countries[row.Country]
		if !ok {
			return nil, fmt.Errorf("movie %q: country %q not resolved", row.Name, row.Country)
		}
		rows = append(rows, MovieRow{
			Name:      row.Name,
			Date:      row.Date,
			Score:     row.Score,
			Overview:  row.Overview,
			Status:    row.Status,
			Budget:    row.Budget,
			Revenue:   row.Revenue,
			CountryID: countryID,
		})
	}
	return rows, nil
}
