// Package store is the single I/O boundary over the remote tabular record
// store. Collections are spreadsheet tabs with a fixed ordered column
// schema; rows travel as string-keyed maps and the domain layer owns all
// parsing.
//
// The store provides no transactions, no locking and no compare-and-swap:
// UpdateByID is a read-merge-write and NextID is a scan, so concurrent
// writers against the same row or prefix are only safe when serialized by
// the caller. Within one process the services do that with a keyed mutex;
// cross-process writers remain unordered until the backing store grows a
// version column.
package store

import (
	"context"
	"fmt"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/shared"
)

// Store is the adapter contract consumed by every domain service.
type Store interface {
	// List returns all rows of a collection in store order.
	List(ctx context.Context, c Collection) ([]Row, error)
	// Get returns the row whose id column equals id, or ErrNotFound.
	Get(ctx context.Context, c Collection, id string) (Row, error)
	// Append adds a new row. The row's created_at/updated_at are stamped
	// by the implementation when the schema carries those columns.
	Append(ctx context.Context, c Collection, row Row) error
	// UpdateByID merges the partial fields into the current row and writes
	// the full row back, refreshing updated_at. Read-merge-write, not atomic.
	UpdateByID(ctx context.Context, c Collection, id string, fields Row) error
	// NextID returns prefix + "-" + zero-padded(max numeric suffix + 1)
	// over the collection's existing ids, PREFIX-00001 when none exist.
	// Serialized per prefix in-process only.
	NextID(ctx context.Context, c Collection, prefix string) (string, error)
}

// Filter returns the rows of a collection whose columns equal every value
// in match. Filtering happens client-side; the store cannot push predicates
// down to the spreadsheet.
func Filter(ctx context.Context, s Store, c Collection, match Row) ([]Row, error) {
	rows, err := s.List(ctx, c)
	if err != nil {
		return nil, err
	}
	var out []Row
	for _, row := range rows {
		if rowMatches(row, match) {
			out = append(out, row)
		}
	}
	return out, nil
}

func rowMatches(row, match Row) bool {
	for k, v := range match {
		if row[k] != v {
			return false
		}
	}
	return true
}

// NotFoundError wraps ErrNotFound with the collection and id that missed.
func NotFoundError(c Collection, id string) error {
	return fmt.Errorf("%w: %s %s", shared.ErrNotFound, c.Sheet, id)
}
