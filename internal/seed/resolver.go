package seed

import (
	"context"
	"fmt"

	"github.com/cinevault/cinevault/internal/domain"
)

// Resolver implements the resolve-or-create protocol for reference
// entities: look up existing rows by natural key in bounded chunks, then
// create only the missing ones. Generated identifiers for new rows are
// captured directly from the insert, so one call never creates duplicate
// keys as long as no concurrent writer races the same values.
type Resolver struct {
	store     Store
	chunkSize int
}

// NewResolver builds a Resolver writing through store in chunks of chunkSize.
func NewResolver(store Store, chunkSize int) *Resolver {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Resolver{store: store, chunkSize: chunkSize}
}

// Resolve maps every distinct value to a persisted identifier of the given
// kind, creating rows for values not yet stored. An empty input returns an
// empty map without touching the store.
func (r *Resolver) Resolve(ctx context.Context, kind domain.RefKind, values []string) (map[string]int64, error) {
	distinct := dedupe(values)
	result := make(map[string]int64, len(distinct))
	if len(distinct) == 0 {
		return result, nil
	}

	for _, chunk := range chunked(distinct, r.chunkSize) {
		found, err := r.store.LookupRefs(ctx, kind, chunk)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", kind, err)
		}
		for key, id := range found {
			result[key] = id
		}
	}

	missing := make([]string, 0)
	for _, value := range distinct {
		if _, ok := result[value]; !ok {
			missing = append(missing, value)
		}
	}

	for _, chunk := range chunked(missing, r.chunkSize) {
		created, err := r.store.InsertRefs(ctx, kind, chunk)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", kind, err)
		}
		for key, id := range created {
			result[key] = id
		}
	}

	for _, value := range distinct {
		if _, ok := result[value]; !ok {
			return nil, fmt.Errorf("resolve %s: value %q has no identifier after insert", kind, value)
		}
	}
	return result, nil
}

// dedupe returns the distinct values preserving first-occurrence order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	distinct := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		distinct = append(distinct, value)
	}
	return distinct
}

// chunked splits items into consecutive slices of at most size elements.
func chunked[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
