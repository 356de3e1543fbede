// Package models contains the gorm models of the configuration store.
package models

import "time"

// Setting is a named runtime setting, for example the module feature flag.
type Setting struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:191;unique"`
	Value     []byte
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Setting model.
func (Setting) TableName() string {
	return "appconfig_settings"
}

// All returns every model for migrations.
func All() []any {
	return []any{&Group{}, &Entry{}, &Setting{}}
}
