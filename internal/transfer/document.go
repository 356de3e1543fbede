// Package transfer exports and imports groups and entries as json or csv documents.
package transfer

import (
	"path/filepath"
	"strconv"
	"strings"
)

// DocumentVersion is the version written into exported documents.
const DocumentVersion = "1.0"

// Format is a document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat returns the format named s, FormatJSON for anything unknown.
func ParseFormat(s string) Format {
	if Format(strings.ToLower(strings.TrimSpace(s))) == FormatCSV {
		return FormatCSV
	}

	return FormatJSON
}

// DetectFormat prefers the format implied by the extension of filename over requested.
func DetectFormat(filename string, requested Format) Format {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case string(FormatCSV):
		return FormatCSV
	case string(FormatJSON):
		return FormatJSON
	default:
		return requested
	}
}

// Mode selects how an import treats existing data.
type Mode string

// Import modes.
const (
	// ModeAppend updates groups by code and entries by key and group, and creates the rest.
	ModeAppend Mode = "append"
	// ModeReplace deletes all groups and entries first.
	ModeReplace Mode = "replace"
)

// ParseMode returns the mode named s, ModeAppend for anything unknown.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == ModeReplace {
		return ModeReplace
	}

	return ModeAppend
}

// Active is an activity flag encoded as 0 or 1.
type Active bool

// MarshalJSON implements json.Marshaler.
func (a Active) MarshalJSON() ([]byte, error) {
	if a {
		return []byte("1"), nil
	}

	return []byte("0"), nil
}

// UnmarshalJSON accepts numbers, booleans and their string forms.
func (a *Active) UnmarshalJSON(b []byte) error {
	*a = parseActive(strings.Trim(string(b), `"`))

	return nil
}

func parseActive(s string) Active {
	s = strings.TrimSpace(s)

	switch strings.ToLower(s) {
	case "", "0", "false", "null":
		return false
	case "true":
		return true
	}

	n, err := strconv.ParseFloat(s, 64)

	return Active(err == nil && n != 0)
}

// GroupRecord is an exported group. Nil fields keep the stored value on import.
type GroupRecord struct {
	Name        *string `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description"`
	IsActive    *Active `json:"is_active"`
	Version     *string `json:"version"`
}

// EntryRecord is an exported entry. Value holds the payload column of ValueType.
// Nil fields keep the stored value on import.
type EntryRecord struct {
	GroupCode         *string `json:"group_code"`
	KeyName           string  `json:"key_name"`
	Value             *string `json:"value"`
	ValueType         *string `json:"value_type"`
	FilePath          *string `json:"file_path"`
	IsActive          *Active `json:"is_active"`
	Version           *string `json:"version"`
	CMSIncludeContent *Active `json:"cms_include_content,omitempty"`
}

// Document is a complete export.
type Document struct {
	Version    string        `json:"version"`
	ExportedAt string        `json:"exported_at"`
	Groups     []GroupRecord `json:"groups"`
	KeyValues  []EntryRecord `json:"keyvalues"`
}

// Result counts the rows an import touched.
type Result struct {
	GroupsCreated  int   `json:"groups_created"`
	GroupsUpdated  int   `json:"groups_updated"`
	GroupsDeleted  int64 `json:"groups_deleted"`
	EntriesCreated int   `json:"entries_created"`
	EntriesUpdated int   `json:"entries_updated"`
	EntriesDeleted int64 `json:"entries_deleted"`
}

func strPtr(s string) *string {
	return &s
}

func activePtr(b bool) *Active {
	a := Active(b)
	return &a
}

func deref(s *string, def string) string {
	if s == nil {
		return def
	}

	return *s
}
