package seed

import (
	"context"
	"fmt"
	"testing"

	"github.com/cinevault/cinevault/internal/domain"
)

func TestResolver_EmptyInputIssuesNoQueries(t *testing.T) {
	store := newMemStore()
	resolver := NewResolver(store, 10)

	got, err := resolver.Resolve(context.Background(), domain.RefGenre, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("mapping = %v, want empty", got)
	}
	if store.lookupCalls != 0 || store.insertRefCalls != 0 {
		t.Fatalf("store touched for empty input: lookups=%d inserts=%d", store.lookupCalls, store.insertRefCalls)
	}
}

func TestResolver_DeduplicatesRepeatedValues(t *testing.T) {
	store := newMemStore()
	resolver := NewResolver(store, 10)

	got, err := resolver.Resolve(context.Background(), domain.RefGenre, []string{"Drama", "Drama", "Action", "Drama"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("mapping size = %d, want 2", len(got))
	}
	if store.refCount(domain.RefGenre) != 2 {
		t.Fatalf("created %d rows, want 2", store.refCount(domain.RefGenre))
	}
}

func TestResolver_ReusesExistingRows(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	first, err := NewResolver(store, 10).Resolve(ctx, domain.RefGenre, []string{"Drama", "Action"})
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}

	second, err := NewResolver(store, 10).Resolve(ctx, domain.RefGenre, []string{"Action", "Comedy"})
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}

	if first["Action"] != second["Action"] {
		t.Fatalf("Action id changed: %d vs %d", first["Action"], second["Action"])
	}
	if store.refCount(domain.RefGenre) != 3 {
		t.Fatalf("total rows = %d, want 3", store.refCount(domain.RefGenre))
	}
}

func TestResolver_ChunkBoundaries(t *testing.T) {
	const chunkSize = 4
	for _, n := range []int{chunkSize - 1, chunkSize, chunkSize + 1, chunkSize * 3} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			store := newMemStore()
			values := make([]string, 0, n)
			for i := 0; i < n; i++ {
				values = append(values, fmt.Sprintf("actor-%03d", i))
			}

			got, err := NewResolver(store, chunkSize).Resolve(context.Background(), domain.RefActor, values)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if len(got) != n {
				t.Fatalf("mapping size = %d, want %d", len(got), n)
			}
			if store.refCount(domain.RefActor) != n {
				t.Fatalf("created %d rows, want %d", store.refCount(domain.RefActor), n)
			}
			seen := make(map[int64]string, n)
			for key, id := range got {
				if prev, dup := seen[id]; dup {
					t.Fatalf("id %d assigned to both %q and %q", id, prev, key)
				}
				seen[id] = key
			}

			wantCalls := (n + chunkSize - 1) / chunkSize
			if store.lookupCalls != wantCalls {
				t.Fatalf("lookup calls = %d, want %d", store.lookupCalls, wantCalls)
			}
			if store.insertRefCalls != wantCalls {
				t.Fatalf("insert calls = %d, want %d", store.insertRefCalls, wantCalls)
			}
		})
	}
}

func TestResolver_MixedExistingAndMissingAcrossChunks(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	if _, err := NewResolver(store, 3).Resolve(ctx, domain.RefLanguage, []string{"English", "French", "German"}); err != nil {
		t.Fatalf("prepopulate: %v", err)
	}

	values := []string{"Spanish", "English", "Italian", "German", "Dutch", "Polish", "French"}
	got, err := NewResolver(store, 3).Resolve(ctx, domain.RefLanguage, values)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != len(values) {
		t.Fatalf("mapping size = %d, want %d", len(got), len(values))
	}
	if store.refCount(domain.RefLanguage) != 7 {
		t.Fatalf("rows = %d, want 7", store.refCount(domain.RefLanguage))
	}
}
