// Package store adapts the gorm controllers to the context aware stores the config service reads from.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/orkank/AppConfig/internal/db/controller/entry"
	"github.com/orkank/AppConfig/internal/db/controller/group"
	"github.com/orkank/AppConfig/internal/db/models"
)

// Groups reads groups.
type Groups struct {
	DB *gorm.DB
}

// Entries reads entries.
type Entries struct {
	DB *gorm.DB
}

// ListActive returns all active groups.
func (s Groups) ListActive(ctx context.Context) ([]models.Group, error) {
	return group.ListActive(withContext(ctx, s.DB))
}

// Get returns the group with id, nil if it does not exist.
func (s Groups) Get(ctx context.Context, id uint) (*models.Group, error) {
	g, err := group.Get(withContext(ctx, s.DB), id)
	if errors.Is(err, group.ErrGroupNotFound) {
		return nil, nil
	}

	return g, err
}

// ListActive returns all active entries, limited to the group with groupCode if set.
func (s Entries) ListActive(ctx context.Context, groupCode string) ([]models.Entry, error) {
	return entry.ListActive(withContext(ctx, s.DB), groupCode)
}

// FindFirstActive returns the first active entry named key, nil if there is none.
func (s Entries) FindFirstActive(ctx context.Context, key, groupCode string) (*models.Entry, error) {
	e, err := entry.FindFirstActive(withContext(ctx, s.DB), key, groupCode)
	if errors.Is(err, entry.ErrEntryNotFound) {
		return nil, nil
	}

	return e, err
}

func withContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if db == nil {
		return nil
	}

	return db.WithContext(ctx)
}
