package seed

import (
	"context"
	"fmt"
)

// DefaultChunkSize bounds the number of rows per bulk statement.
const DefaultChunkSize = 1000

// Writer performs chunked bulk inserts, preserving input order across
// chunks. Association building zips row index to generated id positionally,
// so movie writes must echo identifiers exactly in submission order.
type Writer struct {
	store     Store
	chunkSize int
}

// NewWriter builds a Writer writing through store in chunks of chunkSize.
func NewWriter(store Store, chunkSize int) *Writer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Writer{store: store, chunkSize: chunkSize}
}

// WriteMovies inserts rows in fixed-size batches and returns the generated
// identifiers in the same order as rows. Empty input issues no statement.
func (w *Writer) WriteMovies(ctx context.Context, rows []MovieRow) ([]int64, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(rows))
	for _, chunk := range chunked(rows, w.chunkSize) {
		got, err := w.store.InsertMovies(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("write movies: %w", err)
		}
		if len(got) != len(chunk) {
			return nil, fmt.Errorf("write movies: store echoed %d ids for %d rows", len(got), len(chunk))
		}
		ids = append(ids, got...)
	}
	return ids, nil
}

// WriteAssociations inserts join rows in fixed-size batches. Empty input
// issues no statement.
func (w *Writer) WriteAssociations(ctx context.Context, kind AssocKind, rows []AssocRow) error {
	for _, chunk := range chunked(rows, w.chunkSize) {
		if err := w.store.InsertAssociations(ctx, kind, chunk); err != nil {
			return fmt.Errorf("write %s: %w", kind, err)
		}
	}
	return nil
}
