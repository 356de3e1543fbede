// Package group provides CRUD operations for entry groups.
package group

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/orkank/AppConfig/internal/db/models"
)

const (
	codeQueryPattern = "code = ?"
	idsQueryPattern  = "id IN ?"
)

// List retrieves all groups ordered by id.
func List(db *gorm.DB) ([]models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var groups []models.Group
	if err := db.Order("id").Find(&groups).Error; err != nil {
		return nil, err
	}

	return groups, nil
}

// ListActive retrieves all active groups ordered by id.
func ListActive(db *gorm.DB) ([]models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var groups []models.Group
	if err := db.Where("is_active = ?", true).Order("id").Find(&groups).Error; err != nil {
		return nil, err
	}

	return groups, nil
}

// Get retrieves a group by its id.
func Get(db *gorm.DB, id uint) (*models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var g models.Group
	if err := db.First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	return &g, nil
}

// GetByCode retrieves a group by its code. Codes are compared case-sensitively.
func GetByCode(db *gorm.DB, code string) (*models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if code == "" {
		return nil, ErrGroupCodeEmpty
	}

	var groups []models.Group
	if err := db.Where(codeQueryPattern, code).Find(&groups).Error; err != nil {
		return nil, err
	}

	// mysql collations compare case-insensitively, so check again here
	for i := range groups {
		if groups[i].Code == code {
			return &groups[i], nil
		}
	}

	return nil, ErrGroupNotFound
}

// Create validates and inserts g.
func Create(db *gorm.DB, g *models.Group) error {
	if db == nil {
		return ErrDBNil
	}

	g.ID = 0
	if err := prepare(db, g); err != nil {
		return err
	}

	return db.Create(g).Error
}

// Update validates g and saves it over the stored group with the same id.
func Update(db *gorm.DB, g *models.Group) error {
	if db == nil {
		return ErrDBNil
	}

	existing, err := Get(db, g.ID)
	if err != nil {
		return err
	}

	if err = prepare(db, g); err != nil {
		return err
	}

	existing.Name = g.Name
	existing.Code = g.Code
	existing.Description = g.Description
	existing.IsActive = g.IsActive
	existing.Version = g.Version

	if err = db.Save(existing).Error; err != nil {
		return err
	}

	*g = *existing

	return nil
}

// Delete deletes a group and all of its entries in one transaction.
// It returns the number of deleted entries.
func Delete(db *gorm.DB, id uint) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var deletedEntries int64

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := Get(tx, id); err != nil {
			return err
		}

		res := tx.Where("group_id = ?", id).Delete(&models.Entry{})
		if res.Error != nil {
			return res.Error
		}
		deletedEntries = res.RowsAffected

		return tx.Delete(&models.Group{}, id).Error
	})
	if err != nil {
		return 0, err
	}

	return deletedEntries, nil
}

// SetStatus activates or deactivates the groups with the given ids.
// It returns the number of updated groups.
func SetStatus(db *gorm.DB, ids []uint, active bool) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}

	res := db.Model(&models.Group{}).Where(idsQueryPattern, ids).Update("is_active", active)

	return res.RowsAffected, res.Error
}

func prepare(db *gorm.DB, g *models.Group) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Code = strings.TrimSpace(g.Code)
	g.Version = strings.TrimSpace(g.Version)

	if g.Name == "" {
		return ErrGroupNameEmpty
	}
	if g.Code == "" {
		return ErrGroupCodeEmpty
	}

	existing, err := GetByCode(db, g.Code)
	switch {
	case errors.Is(err, ErrGroupNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != g.ID:
		return ErrGroupCodeExists
	}

	return nil
}

// DeleteAll deletes every group and every entry in one transaction.
// It returns the number of deleted groups and entries.
func DeleteAll(db *gorm.DB) (groups, entries int64, err error) {
	if db == nil {
		return 0, 0, ErrDBNil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})

		res := all.Delete(&models.Entry{})
		if res.Error != nil {
			return res.Error
		}
		entries = res.RowsAffected

		res = all.Delete(&models.Group{})
		if res.Error != nil {
			return res.Error
		}
		groups = res.RowsAffected

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return groups, entries, nil
}
