package models

import (
	"time"

	"github.com/orkank/AppConfig/internal/value"
)

// Entry is a single key-value record, optionally scoped to a group.
// Only the payload column matching ValueType is authoritative.
type Entry struct {
	// ID is the unique identifier for the entry.
	ID uint `gorm:"primaryKey"                           json:"id"`
	// KeyName is the key clients look the value up by. It is unique per group.
	KeyName string `gorm:"size:255;not null;index"             json:"key_name"`
	// GroupID is the owning group, nil for ungrouped defaults.
	GroupID *uint `gorm:"index"                                json:"group_id"`
	// IsActive hides the entry when false.
	IsActive bool `gorm:"not null;index"                      json:"is_active"`
	// Version overrides the group version when set.
	Version string `gorm:"size:50"                             json:"version"`
	// ValueType selects the authoritative payload column.
	ValueType value.Type `gorm:"size:20;not null;default:text"       json:"value_type"`

	TextValue         string `gorm:"type:text" json:"text_value"`
	FilePath          string `gorm:"size:512"  json:"file_path"`
	JSONValue         string `gorm:"type:text" json:"json_value"`
	ProductsValue     string `gorm:"type:text" json:"products_value"`
	CategoriesValue   string `gorm:"type:text" json:"categories_value"`
	CMSPagesValue     string `gorm:"type:text" json:"cms_pages_value"`
	CMSIncludeContent bool   `json:"cms_include_content"`

	// CreatedAt is the timestamp when the entry was created (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the timestamp when the entry was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the Entry model.
func (Entry) TableName() string {
	return "appconfig_entries"
}

// Stored returns the raw payload columns of e.
func (e *Entry) Stored() value.Stored {
	return value.Stored{
		Type:              e.ValueType,
		Text:              e.TextValue,
		FilePath:          e.FilePath,
		JSON:              e.JSONValue,
		Products:          e.ProductsValue,
		Categories:        e.CategoriesValue,
		CMSPages:          e.CMSPagesValue,
		CMSIncludeContent: e.CMSIncludeContent,
	}
}
