package appconfig

import (
	"context"

	"github.com/orkank/AppConfig/internal/db/models"
	"github.com/orkank/AppConfig/internal/value"
)

type (
	// GroupStore reads groups.
	GroupStore interface {
		ListActive(ctx context.Context) ([]models.Group, error)
		// Get returns nil without error when the group does not exist.
		Get(ctx context.Context, id uint) (*models.Group, error)
	}

	// EntryStore reads entries.
	EntryStore interface {
		ListActive(ctx context.Context, groupCode string) ([]models.Entry, error)
		// FindFirstActive returns nil without error when no entry matches.
		FindFirstActive(ctx context.Context, key, groupCode string) (*models.Entry, error)
	}

	// Resolver materializes stored payloads.
	Resolver interface {
		Resolve(ctx context.Context, s value.Stored) value.Resolved
	}

	// FeatureFlag reports whether the module is enabled.
	FeatureFlag interface {
		Enabled(ctx context.Context) bool
	}

	// StaticFlag is a FeatureFlag with a fixed state.
	StaticFlag bool
)

// Enabled implements FeatureFlag.
func (f StaticFlag) Enabled(context.Context) bool {
	return bool(f)
}

// Entry is a resolved entry as served by GetConfig.
type Entry struct {
	Key        string           `json:"key"`
	Type       value.Type       `json:"type"`
	Text       string           `json:"text"`
	File       string           `json:"file"`
	JSON       any              `json:"json"`
	Products   []value.Product  `json:"products"`
	Categories []value.Category `json:"categories"`
	CMSPages   []value.CMSPage  `json:"cms_pages"`
	Version    *string          `json:"version"`
}

// GroupInfo describes a group.
type GroupInfo struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Version     *string `json:"version"`
}

// GroupConfig is a group with its resolved entries.
type GroupConfig struct {
	GroupInfo
	Configs map[string]Entry `json:"configs"`
}

// Config is the full configuration: ungrouped entries and entries per group code.
type Config struct {
	Defaults map[string]Entry       `json:"DEFAULTS"`
	Groups   map[string]GroupConfig `json:"GROUPS"`
}

// ListQuery filters List. Empty slices do not filter.
type ListQuery struct {
	AppVersion string
	Keys       []string
	Groups     []string
}

// FlatEntry is one record of the flat list.
type FlatEntry struct {
	Key        string           `json:"key"`
	Group      *string          `json:"group"`
	Type       value.Type       `json:"type"`
	Text       string           `json:"text"`
	File       string           `json:"file"`
	JSON       any              `json:"json"`
	Products   []value.Product  `json:"products"`
	Categories []value.Category `json:"categories"`
	Version    *string          `json:"version"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func groupInfo(g *models.Group) GroupInfo {
	return GroupInfo{
		Name:        g.Name,
		Description: nullable(g.Description),
		Version:     nullable(g.Version),
	}
}

// Reader is the read API of Service, implemented by decorators such as the response cache.
type Reader interface {
	Enabled(ctx context.Context) bool
	GetConfig(ctx context.Context, appVersion, groupCode string) (*Config, error)
	GetGroups(ctx context.Context, appVersion string) (map[string]GroupInfo, error)
	GetValue(ctx context.Context, key, groupCode, appVersion string) (any, error)
	List(ctx context.Context, q ListQuery) ([]FlatEntry, error)
}

var _ Reader = (*Service)(nil)
