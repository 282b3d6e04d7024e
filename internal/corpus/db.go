package corpus

import (
	"context"
	"fmt"

	"github.com/nao1215/wikiracer/internal/database"
	"github.com/nao1215/wikiracer/internal/model"
)

// PageStore is the subset of database.Store used by DBSource.
type PageStore interface {
	GetPage(ctx context.Context, id model.PageID) (*database.PageRecord, error)
}

// DBSource serves pages imported into the SQLite store.
type DBSource struct {
	denyList

	store PageStore
}

// NewDBSource creates a DBSource reading from store.
func NewDBSource(store PageStore) *DBSource {
	return &DBSource{
		denyList: newDenyList(),
		store:    store,
	}
}

// Fetch returns the stored page, or Placeholder when it was never imported.
func (d *DBSource) Fetch(ctx context.Context, id model.PageID) (string, error) {
	record, err := d.store.GetPage(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to load page %s: %w", id, err)
	}
	if record == nil {
		return Placeholder, nil
	}
	return record.Content, nil
}
