package models

import "time"

// Group is a named, versioned collection of entries.
// Clients address groups by Code, ID is internal.
type Group struct {
	// ID is the unique identifier for the group.
	ID uint `gorm:"primaryKey"                          json:"id"`
	// Name is the display name of the group.
	Name string `gorm:"size:255;not null"                  json:"name"`
	// Code is the stable, case-sensitive identifier clients use.
	Code string `gorm:"size:100;not null;uniqueIndex"      json:"code"`
	// Description is an optional human-readable explanation of the group.
	Description string `gorm:"type:text"                          json:"description"`
	// IsActive hides the group and all of its entries when false.
	IsActive bool `gorm:"not null;index"                     json:"is_active"`
	// Version is the minimum app version the group is visible to. Empty means unconstrained.
	Version string `gorm:"size:50"                            json:"version"`
	// Entries belonging to the group. Deleting the group deletes them.
	Entries []Entry `gorm:"constraint:OnDelete:CASCADE"        json:"-"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the Group model.
func (Group) TableName() string {
	return "appconfig_groups"
}
