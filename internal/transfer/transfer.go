package transfer

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/orkank/AppConfig/internal/db/controller/entry"
	"github.com/orkank/AppConfig/internal/db/controller/group"
	"github.com/orkank/AppConfig/internal/db/models"
	"github.com/orkank/AppConfig/internal/value"
)

const exportedAtLayout = "2006-01-02 15:04:05"

// Export reads every group and entry into a Document stamped with now.
func Export(db *gorm.DB, now time.Time) (*Document, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	groups, err := group.List(db)
	if err != nil {
		return nil, errors.Wrap(err, "list groups")
	}

	entries, err := entry.List(db, entry.Filter{})
	if err != nil {
		return nil, errors.Wrap(err, "list entries")
	}

	doc := &Document{
		Version:    DocumentVersion,
		ExportedAt: now.Format(exportedAtLayout),
		Groups:     make([]GroupRecord, 0, len(groups)),
		KeyValues:  make([]EntryRecord, 0, len(entries)),
	}

	codes := make(map[uint]string, len(groups))

	for _, g := range groups {
		codes[g.ID] = g.Code

		doc.Groups = append(doc.Groups, GroupRecord{
			Name:        strPtr(g.Name),
			Code:        g.Code,
			Description: nullable(g.Description),
			IsActive:    activePtr(g.IsActive),
			Version:     nullable(g.Version),
		})
	}

	for i := range entries {
		e := &entries[i]

		rec := EntryRecord{
			KeyName:   e.KeyName,
			Value:     strPtr(payloadColumn(e)),
			ValueType: strPtr(string(e.ValueType)),
			FilePath:  nullable(e.FilePath),
			IsActive:  activePtr(e.IsActive),
			Version:   nullable(e.Version),
		}

		if e.GroupID != nil {
			if code, ok := codes[*e.GroupID]; ok {
				rec.GroupCode = strPtr(code)
			}
		}

		if e.ValueType == value.TypeCMS {
			rec.CMSIncludeContent = activePtr(e.CMSIncludeContent)
		}

		doc.KeyValues = append(doc.KeyValues, rec)
	}

	return doc, nil
}

// Import writes doc in one transaction. In ModeReplace every group and entry is deleted first.
// Groups are matched by code and entries by key name and group, matches are updated and
// the rest created. Entries naming an unknown group code are imported ungrouped.
func Import(db *gorm.DB, doc *Document, mode Mode) (Result, error) {
	var res Result

	if db == nil {
		return res, ErrDBNil
	}
	if doc == nil {
		return res, ErrInvalidDocument
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if mode == ModeReplace {
			groups, entries, err := group.DeleteAll(tx)
			if err != nil {
				return errors.Wrap(err, "delete existing data")
			}

			res.GroupsDeleted, res.EntriesDeleted = groups, entries
		}

		ids, err := importGroups(tx, doc.Groups, &res)
		if err != nil {
			return err
		}

		return importEntries(tx, doc.KeyValues, ids, &res)
	})
	if err != nil {
		return Result{}, err
	}

	return res, nil
}

func importGroups(tx *gorm.DB, records []GroupRecord, res *Result) (map[string]uint, error) {
	existing, err := group.List(tx)
	if err != nil {
		return nil, errors.Wrap(err, "list groups")
	}

	byCode := make(map[string]*models.Group, len(existing))
	ids := make(map[string]uint, len(existing))

	for i := range existing {
		byCode[existing[i].Code] = &existing[i]
		ids[existing[i].Code] = existing[i].ID
	}

	for _, rec := range records {
		code := strings.TrimSpace(rec.Code)
		if code == "" {
			continue
		}

		if g, ok := byCode[code]; ok {
			applyGroup(g, rec)

			if err = group.Update(tx, g); err != nil {
				return nil, errors.Wrapf(err, "update group %q", code)
			}

			res.GroupsUpdated++

			continue
		}

		g := &models.Group{Code: code, IsActive: true}
		applyGroup(g, rec)

		if g.Name == "" {
			g.Name = code
		}

		if err = group.Create(tx, g); err != nil {
			return nil, errors.Wrapf(err, "create group %q", code)
		}

		byCode[code] = g
		ids[code] = g.ID
		res.GroupsCreated++
	}

	return ids, nil
}

func applyGroup(g *models.Group, rec GroupRecord) {
	if rec.Name != nil && *rec.Name != "" {
		g.Name = *rec.Name
	}

	if rec.Description != nil {
		g.Description = *rec.Description
	}

	if rec.IsActive != nil {
		g.IsActive = bool(*rec.IsActive)
	}

	if rec.Version != nil {
		g.Version = *rec.Version
	}
}

func importEntries(tx *gorm.DB, records []EntryRecord, groupIDs map[string]uint, res *Result) error {
	for _, rec := range records {
		key := strings.TrimSpace(rec.KeyName)
		if key == "" {
			continue
		}

		filter := entry.Filter{KeyName: key, Ungrouped: true}

		var groupID *uint
		if rec.GroupCode != nil {
			if id, ok := groupIDs[*rec.GroupCode]; ok {
				groupID = &id
				filter = entry.Filter{KeyName: key, GroupID: groupID}
			}
		}

		found, err := entry.List(tx, filter)
		if err != nil {
			return errors.Wrapf(err, "look up entry %q", key)
		}

		if len(found) > 0 {
			e := &found[0]
			e.GroupID = groupID
			applyEntry(e, rec)

			if err = entry.Update(tx, e); err != nil {
				return errors.Wrapf(err, "update entry %q", key)
			}

			res.EntriesUpdated++

			continue
		}

		e := &models.Entry{KeyName: key, GroupID: groupID, ValueType: value.TypeText, IsActive: true}
		applyEntry(e, rec)

		if err = entry.Create(tx, e); err != nil {
			return errors.Wrapf(err, "create entry %q", key)
		}

		res.EntriesCreated++
	}

	return nil
}

// applyEntry copies the set fields of rec onto e. A set value replaces every payload column.
func applyEntry(e *models.Entry, rec EntryRecord) {
	if rec.ValueType != nil && *rec.ValueType != "" {
		e.ValueType = value.ParseType(*rec.ValueType)
	}

	if rec.Value != nil {
		e.TextValue, e.JSONValue = "", ""
		e.ProductsValue, e.CategoriesValue, e.CMSPagesValue = "", "", ""
		setPayloadColumn(e, *rec.Value)
	}

	if rec.FilePath != nil {
		e.FilePath = *rec.FilePath
	}

	if rec.IsActive != nil {
		e.IsActive = bool(*rec.IsActive)
	}

	if rec.Version != nil {
		e.Version = *rec.Version
	}

	if rec.CMSIncludeContent != nil {
		e.CMSIncludeContent = bool(*rec.CMSIncludeContent)
	}
}

func payloadColumn(e *models.Entry) string {
	switch e.ValueType {
	case value.TypeFile:
		return ""
	case value.TypeJSON:
		return e.JSONValue
	case value.TypeProducts:
		return e.ProductsValue
	case value.TypeCategory, value.TypeCategories:
		return e.CategoriesValue
	case value.TypeCMS:
		return e.CMSPagesValue
	default:
		return e.TextValue
	}
}

func setPayloadColumn(e *models.Entry, v string) {
	switch e.ValueType {
	case value.TypeFile:
		if v != "" {
			e.FilePath = v
		}
	case value.TypeJSON:
		e.JSONValue = v
	case value.TypeProducts:
		e.ProductsValue = v
	case value.TypeCategory, value.TypeCategories:
		e.CategoriesValue = v
	case value.TypeCMS:
		e.CMSPagesValue = v
	default:
		e.TextValue = v
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
