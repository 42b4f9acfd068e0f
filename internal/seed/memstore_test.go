package seed

import (
	"context"
	"fmt"

	"github.com/cinevault/cinevault/internal/domain"
)

// memStore is an in-memory Store double. It enforces natural-key uniqueness
// the way a unique index would, counts store calls per operation, and can be
// told to fail a given operation to exercise error paths.
type memStore struct {
	nextID int64

	refs   map[domain.RefKind]map[string]int64
	movies []MovieRow
	ids    []int64
	assocs map[AssocKind][]AssocRow
	groups []string

	lookupCalls      int
	insertRefCalls   int
	insertMovieCalls int
	insertAssocCalls int

	failInsertMovies       error
	failInsertAssociations error
}

func newMemStore() *memStore {
	return &memStore{
		refs:   make(map[domain.RefKind]map[string]int64),
		assocs: make(map[AssocKind][]AssocRow),
	}
}

func (m *memStore) allocID() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) HasMovies(ctx context.Context) (bool, error) {
	return len(m.movies) > 0, nil
}

func (m *memStore) CountGroups(ctx context.Context) (int64, error) {
	return int64(len(m.groups)), nil
}

func (m *memStore) InsertGroups(ctx context.Context, names []string) error {
	m.groups = append(m.groups, names...)
	return nil
}

func (m *memStore) LookupRefs(ctx context.Context, kind domain.RefKind, keys []string) (map[string]int64, error) {
	m.lookupCalls++
	result := make(map[string]int64)
	for _, key := range keys {
		if id, ok := m.refs[kind][key]; ok {
			result[key] = id
		}
	}
	return result, nil
}

func (m *memStore) InsertRefs(ctx context.Context, kind domain.RefKind, keys []string) (map[string]int64, error) {
	m.insertRefCalls++
	if m.refs[kind] == nil {
		m.refs[kind] = make(map[string]int64)
	}
	result := make(map[string]int64, len(keys))
	for _, key := range keys {
		if _, ok := m.refs[kind][key]; ok {
			return nil, fmt.Errorf("duplicate key %q for %s", key, kind)
		}
		id := m.allocID()
		m.refs[kind][key] = id
		result[key] = id
	}
	return result, nil
}

func (m *memStore) InsertMovies(ctx context.Context, rows []MovieRow) ([]int64, error) {
	m.insertMovieCalls++
	if m.failInsertMovies != nil {
		return nil, m.failInsertMovies
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		id := m.allocID()
		m.movies = append(m.movies, row)
		m.ids = append(m.ids, id)
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memStore) InsertAssociations(ctx context.Context, kind AssocKind, rows []AssocRow) error {
	m.insertAssocCalls++
	if m.failInsertAssociations != nil {
		return m.failInsertAssociations
	}
	for _, row := range rows {
		for _, existing := range m.assocs[kind] {
			if existing == row {
				return fmt.Errorf("duplicate %s row %+v", kind, row)
			}
		}
		m.assocs[kind] = append(m.assocs[kind], row)
	}
	return nil
}

func (m *memStore) refCount(kind domain.RefKind) int {
	return len(m.refs[kind])
}
