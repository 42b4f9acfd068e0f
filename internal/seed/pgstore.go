package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cinevault/cinevault/internal/domain"
)

// Querier is the subset of pgx execution methods the store needs. Both
// *pgxpool.Pool and pgx.Tx satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var refTables = map[domain.RefKind]struct {
	table  string
	keyCol string
}{
	domain.RefCountry:  {"countries", "code"},
	domain.RefGenre:    {"genres", "name"},
	domain.RefActor:    {"actors", "name"},
	domain.RefLanguage: {"languages", "name"},
}

var assocColumns = map[AssocKind]string{
	AssocGenres:    "genre_id",
	AssocActors:    "actor_id",
	AssocLanguages: "language_id",
}

// PgStore implements Store over a pgx connection or transaction.
type PgStore struct {
	q Querier
}

// NewPgStore wraps a pgx pool or transaction.
func NewPgStore(q Querier) *PgStore {
	return &PgStore{q: q}
}

// HasMovies reports whether at least one movie row exists.
func (s *PgStore) HasMovies(ctx context.Context) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies)`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check movies exist: %w", err)
	}
	return exists, nil
}

// CountGroups returns the number of default user groups.
func (s *PgStore) CountGroups(ctx context.Context) (int64, error) {
	var count int64
	err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM user_groups`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count user groups: %w", err)
	}
	return count, nil
}

// InsertGroups creates the given user groups.
func (s *PgStore) InsertGroups(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	values := make([]string, 0, len(names))
	args := make([]any, 0, len(names))
	for _, name := range names {
		args = append(args, name)
		values = append(values, fmt.Sprintf("($%d)", len(args)))
	}
	query := fmt.Sprintf(`INSERT INTO user_groups (name) VALUES %s`, strings.Join(values, ","))
	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert user groups: %w", err)
	}
	return nil
}

// LookupRefs fetches existing reference rows of kind by natural key.
func (s *PgStore) LookupRefs(ctx context.Context, kind domain.RefKind, keys []string) (map[string]int64, error) {
	ref, ok := refTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown reference kind %q", kind)
	}
	if len(keys) == 0 {
		return map[string]int64{}, nil
	}

	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE %s = ANY($1)`, ref.keyCol, ref.table, ref.keyCol)
	rows, err := s.q.Query(ctx, query, keys)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", ref.table, err)
	}
	defer rows.Close()

	result := make(map[string]int64, len(keys))
	for rows.Next() {
		var id int64
		var key string
		if err := rows.Scan(&id, &key); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", ref.table, err)
		}
		result[key] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lookup %s: %w", ref.table, err)
	}
	return result, nil
}

// InsertRefs creates reference rows and returns their generated identifiers.
func (s *PgStore) InsertRefs(ctx context.Context, kind domain.RefKind, keys []string) (map[string]int64, error) {
	ref, ok := refTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown reference kind %q", kind)
	}
	if len(keys) == 0 {
		return map[string]int64{}, nil
	}

	values := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, key := range keys {
		args = append(args, key)
		values = append(values, fmt.Sprintf("($%d)", len(args)))
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES %s RETURNING id, %s`,
		ref.table, ref.keyCol, strings.Join(values, ","), ref.keyCol)

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", ref.table, err)
	}
	defer rows.Close()

	result := make(map[string]int64, len(keys))
	for rows.Next() {
		var id int64
		var key string
		if err := rows.Scan(&id, &key); err != nil {
			return nil, fmt.Errorf("scan inserted %s row: %w", ref.table, err)
		}
		result[key] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("insert %s: %w", ref.table, err)
	}
	return result, nil
}

// InsertMovies bulk-inserts movie rows and echoes generated identifiers in
// insertion order. Postgres returns RETURNING rows of a single multi-VALUES
// insert in insertion order, which downstream association building relies on.
func (s *PgStore) InsertMovies(ctx context.Context, rows []MovieRow) ([]int64, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	values := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*8)
	for _, row := range rows {
		base := len(args)
		args = append(args, row.Name, row.Date, row.Score, row.Overview, row.Status, row.Budget, row.Revenue, row.CountryID)
		values = append(values, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
	}

	query := fmt.Sprintf(`
        INSERT INTO movies (name, date, score, overview, status, budget, revenue, country_id)
        VALUES %s
        RETURNING id
    `, strings.Join(values, ","))

	result, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert movies: %w", err)
	}
	defer result.Close()

	ids := make([]int64, 0, len(rows))
	for result.Next() {
		var id int64
		if err := result.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan movie id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("insert movies: %w", err)
	}
	return ids, nil
}

// InsertAssociations bulk-inserts join rows into the table named by kind.
func (s *PgStore) InsertAssociations(ctx context.Context, kind AssocKind, rows []AssocRow) error {
	refCol, ok := assocColumns[kind]
	if !ok {
		return fmt.Errorf("unknown association kind %q", kind)
	}
	if len(rows) == 0 {
		return nil
	}

	values := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*2)
	for _, row := range rows {
		base := len(args)
		args = append(args, row.MovieID, row.RefID)
		values = append(values, fmt.Sprintf("($%d,$%d)", base+1, base+2))
	}
	query := fmt.Sprintf(`INSERT INTO %s (movie_id, %s) VALUES %s`, string(kind), refCol, strings.Join(values, ","))

	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", kind, err)
	}
	return nil
}
