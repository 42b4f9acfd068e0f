package seed

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func testMovieRows(n int) []MovieRow {
	rows := make([]MovieRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, MovieRow{
			Name:      fmt.Sprintf("Movie %03d", i),
			Date:      time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Status:    "Released",
			CountryID: 1,
		})
	}
	return rows
}

func TestWriter_EmptyInputIsNoOp(t *testing.T) {
	store := newMemStore()
	writer := NewWriter(store, 5)

	ids, err := writer.WriteMovies(context.Background(), nil)
	if err != nil {
		t.Fatalf("WriteMovies: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("ids = %v, want empty", ids)
	}
	if err := writer.WriteAssociations(context.Background(), AssocGenres, nil); err != nil {
		t.Fatalf("WriteAssociations: %v", err)
	}
	if store.insertMovieCalls != 0 || store.insertAssocCalls != 0 {
		t.Fatalf("store touched for empty input: movies=%d assocs=%d", store.insertMovieCalls, store.insertAssocCalls)
	}
}

func TestWriter_ChunksAndPreservesOrder(t *testing.T) {
	store := newMemStore()
	writer := NewWriter(store, 4)

	rows := testMovieRows(10)
	ids, err := writer.WriteMovies(context.Background(), rows)
	if err != nil {
		t.Fatalf("WriteMovies: %v", err)
	}
	if len(ids) != len(rows) {
		t.Fatalf("ids = %d, want %d", len(ids), len(rows))
	}
	if store.insertMovieCalls != 3 {
		t.Fatalf("insert calls = %d, want 3", store.insertMovieCalls)
	}
	for i, id := range ids {
		if store.movies[i].Name != rows[i].Name {
			t.Fatalf("row %d stored out of order", i)
		}
		if store.ids[i] != id {
			t.Fatalf("id %d echoed out of order", i)
		}
	}
}

func TestWriter_PropagatesStoreError(t *testing.T) {
	store := newMemStore()
	boom := errors.New("disk full")
	store.failInsertMovies = boom

	_, err := NewWriter(store, 4).WriteMovies(context.Background(), testMovieRows(2))
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped %v", err, boom)
	}
}

func TestWriter_AssociationChunking(t *testing.T) {
	store := newMemStore()
	writer := NewWriter(store, 3)

	rows := make([]AssocRow, 0, 7)
	for i := 1; i <= 7; i++ {
		rows = append(rows, AssocRow{MovieID: int64(i), RefID: int64(100 + i)})
	}
	if err := writer.WriteAssociations(context.Background(), AssocActors, rows); err != nil {
		t.Fatalf("WriteAssociations: %v", err)
	}
	if store.insertAssocCalls != 3 {
		t.Fatalf("insert calls = %d, want 3", store.insertAssocCalls)
	}
	if len(store.assocs[AssocActors]) != 7 {
		t.Fatalf("stored rows = %d, want 7", len(store.assocs[AssocActors]))
	}
}
