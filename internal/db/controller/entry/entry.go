// Package entry provides CRUD operations for key-value entries.
package entry

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/orkank/AppConfig/internal/db/models"
	"github.com/orkank/AppConfig/internal/value"
)

const (
	activeQueryPattern  = "is_active = ?"
	keyQueryPattern     = "key_name = ?"
	idsQueryPattern     = "id IN ?"
	groupQueryPattern   = "group_id = ?"
	noGroupQueryPattern = "group_id IS NULL"
	groupCodeSubquery   = "group_id IN (?)"
)

// Filter narrows List results. Zero values do not filter.
type Filter struct {
	GroupID   *uint
	Ungrouped bool
	ValueType value.Type
	KeyName   string
}

// List retrieves the entries matching f ordered by id.
func List(db *gorm.DB, f Filter) ([]models.Entry, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	q := db.Model(&models.Entry{})

	switch {
	case f.Ungrouped:
		q = q.Where(noGroupQueryPattern)
	case f.GroupID != nil:
		q = q.Where(groupQueryPattern, *f.GroupID)
	}

	if f.ValueType != "" {
		q = q.Where("value_type = ?", f.ValueType)
	}

	if f.KeyName != "" {
		q = q.Where(keyQueryPattern, f.KeyName)
	}

	var entries []models.Entry
	if err := q.Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

// ListActive retrieves all active entries ordered by id. A non-empty groupCode limits
// the result to entries of that group.
func ListActive(db *gorm.DB, groupCode string) ([]models.Entry, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	q := scopeGroupCode(db.Where(activeQueryPattern, true), groupCode)

	var entries []models.Entry
	if err := q.Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

// FindFirstActive retrieves the first active entry named key. A non-empty groupCode limits
// the lookup to that group.
func FindFirstActive(db *gorm.DB, key, groupCode string) (*models.Entry, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrKeyNameEmpty
	}

	q := scopeGroupCode(db.Where(activeQueryPattern, true).Where(keyQueryPattern, key), groupCode)

	var e models.Entry
	if err := q.Order("id").First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	return &e, nil
}

// Get retrieves an entry by its id.
func Get(db *gorm.DB, id uint) (*models.Entry, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var e models.Entry
	if err := db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	return &e, nil
}

// Create normalizes, validates and inserts e.
func Create(db *gorm.DB, e *models.Entry) error {
	if db == nil {
		return ErrDBNil
	}

	e.ID = 0
	if err := prepare(db, e); err != nil {
		return err
	}

	return db.Create(e).Error
}

// Update normalizes and validates e and saves it over the stored entry with the same id.
func Update(db *gorm.DB, e *models.Entry) error {
	if db == nil {
		return ErrDBNil
	}

	existing, err := Get(db, e.ID)
	if err != nil {
		return err
	}

	if err = prepare(db, e); err != nil {
		return err
	}

	e.CreatedAt = existing.CreatedAt

	return db.Save(e).Error
}

// Delete deletes an entry by id.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	res := db.Delete(&models.Entry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// DeleteAll deletes every entry and returns how many were deleted.
func DeleteAll(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	res := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Entry{})

	return res.RowsAffected, res.Error
}

// SetStatus activates or deactivates the entries with the given ids.
// It returns the number of updated entries.
func SetStatus(db *gorm.DB, ids []uint, active bool) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}

	res := db.Model(&models.Entry{}).Where(idsQueryPattern, ids).Update("is_active", active)

	return res.RowsAffected, res.Error
}

// Normalize cleans the editable fields of e and infers its value type.
// A zero group id means ungrouped, list payloads that are not a non-empty json array are cleared.
func Normalize(e *models.Entry) {
	e.KeyName = strings.TrimSpace(e.KeyName)
	e.Version = strings.TrimSpace(e.Version)
	e.FilePath = strings.TrimSpace(e.FilePath)

	if e.GroupID != nil && *e.GroupID == 0 {
		e.GroupID = nil
	}

	for _, col := range []*string{&e.ProductsValue, &e.CategoriesValue, &e.CMSPagesValue} {
		if !value.HasRefs(*col) {
			*col = ""
		}
	}

	e.ValueType = value.Infer(e.Stored())
}

func prepare(db *gorm.DB, e *models.Entry) error {
	if e.ValueType != "" && !e.ValueType.Valid() {
		return ErrInvalidValueType
	}

	Normalize(e)

	if e.KeyName == "" {
		return ErrKeyNameEmpty
	}

	q := db.Model(&models.Entry{}).Where(keyQueryPattern, e.KeyName).Where("id <> ?", e.ID)

	if e.GroupID != nil {
		var count int64
		if err := db.Model(&models.Group{}).Where("id = ?", *e.GroupID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrUnknownGroup
		}

		q = q.Where(groupQueryPattern, *e.GroupID)
	} else {
		q = q.Where(noGroupQueryPattern)
	}

	var dupes int64
	if err := q.Count(&dupes).Error; err != nil {
		return err
	}
	if dupes > 0 {
		return ErrEntryAlreadyExists
	}

	return nil
}

func scopeGroupCode(q *gorm.DB, groupCode string) *gorm.DB {
	if groupCode == "" {
		return q
	}

	sub := q.Session(&gorm.Session{NewDB: true}).
		Model(&models.Group{}).
		Select("id").
		Where("code = ?", groupCode)

	return q.Where(groupCodeSubquery, sub)
}
