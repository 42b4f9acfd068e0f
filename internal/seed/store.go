package seed

import (
	"context"
	"time"

	"github.com/cinevault/cinevault/internal/domain"
)

// MovieRow is a fully formed movie record ready for insertion.
type MovieRow struct {
	Name      string
	Date      time.Time
	Score     float64
	Overview  string
	Status    string
	Budget    float64
	Revenue   float64
	CountryID int64
}

// AssocKind selects one of the three movie join tables.
type AssocKind string

const (
	AssocGenres    AssocKind = "movie_genres"
	AssocActors    AssocKind = "movie_actors"
	AssocLanguages AssocKind = "movie_languages"
)

// AssocRow is a single join-table row.
type AssocRow struct {
	MovieID int64
	RefID   int64
}

// Store is the storage surface the seeding pipeline runs against. Each call
// receives at most one chunk of rows; chunking is the caller's concern. A
// Store used for writes must be scoped to a single transaction so a failed
// run leaves nothing behind.
type Store interface {
	// HasMovies reports whether at least one movie row exists.
	HasMovies(ctx context.Context) (bool, error)

	// CountGroups returns the number of default user groups.
	CountGroups(ctx context.Context) (int64, error)

	// InsertGroups creates the given user groups.
	InsertGroups(ctx context.Context, names []string) error

	// LookupRefs returns the identifiers of existing reference rows of the
	// given kind whose natural key is in keys.
	LookupRefs(ctx context.Context, kind domain.RefKind, keys []string) (map[string]int64, error)

	// InsertRefs creates reference rows for keys and returns their generated
	// identifiers.
	InsertRefs(ctx context.Context, kind domain.RefKind, keys []string) (map[string]int64, error)

	// InsertMovies bulk-inserts rows and echoes generated identifiers in
	// insertion order.
	InsertMovies(ctx context.Context, rows []MovieRow) ([]int64, error)

	// InsertAssociations bulk-inserts join rows into the given table.
	InsertAssociations(ctx context.Context, kind AssocKind, rows []AssocRow) error
}
