package appconfig

import (
	"context"

	"github.com/pkg/errors"

	"github.com/orkank/AppConfig/internal/db/models"
	"github.com/orkank/AppConfig/internal/version"
)

// Service serves configuration lookups.
type Service struct {
	groups   GroupStore
	entries  EntryStore
	resolver Resolver
	flag     FeatureFlag
}

// New creates a Service. A nil flag means always enabled.
func New(groups GroupStore, entries EntryStore, resolver Resolver, flag FeatureFlag) *Service {
	if flag == nil {
		flag = StaticFlag(true)
	}

	return &Service{
		groups:   groups,
		entries:  entries,
		resolver: resolver,
		flag:     flag,
	}
}

// Enabled reports the feature flag state.
func (s *Service) Enabled(ctx context.Context) bool {
	return s.flag.Enabled(ctx)
}

// GetConfig returns every entry visible to appVersion, split into ungrouped defaults and
// groups. A non-empty groupCode limits the result to that group.
func (s *Service) GetConfig(ctx context.Context, appVersion, groupCode string) (*Config, error) {
	if !s.flag.Enabled(ctx) {
		return nil, ErrModuleDisabled
	}

	groups, err := s.compatibleGroups(ctx, appVersion)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListActive(ctx, groupCode)
	if err != nil {
		return nil, errors.Wrap(err, "list active entries")
	}

	cfg := &Config{
		Defaults: map[string]Entry{},
		Groups:   map[string]GroupConfig{},
	}

	for i := range entries {
		e := &entries[i]

		g, ok := visibleGroup(groups, e, groupCode)
		if !ok || !entryCompatible(appVersion, e, g) {
			continue
		}

		resolved := s.newEntry(ctx, e)

		if g == nil {
			cfg.Defaults[e.KeyName] = resolved
			continue
		}

		gc, found := cfg.Groups[g.Code]
		if !found {
			gc = GroupConfig{GroupInfo: groupInfo(g), Configs: map[string]Entry{}}
		}

		gc.Configs[e.KeyName] = resolved
		cfg.Groups[g.Code] = gc
	}

	return cfg, nil
}

// GetGroups returns the active groups visible to appVersion by code.
func (s *Service) GetGroups(ctx context.Context, appVersion string) (map[string]GroupInfo, error) {
	if !s.flag.Enabled(ctx) {
		return nil, ErrModuleDisabled
	}

	groups, err := s.compatibleGroups(ctx, appVersion)
	if err != nil {
		return nil, err
	}

	out := make(map[string]GroupInfo, len(groups))
	for _, g := range groups {
		out[g.Code] = groupInfo(g)
	}

	return out, nil
}

// GetValue returns the value of the first active entry named key, optionally within the
// group with groupCode. It returns nil when the module is disabled or no visible entry exists.
func (s *Service) GetValue(ctx context.Context, key, groupCode, appVersion string) (any, error) {
	if !s.flag.Enabled(ctx) || key == "" {
		return nil, nil
	}

	e, err := s.entries.FindFirstActive(ctx, key, groupCode)
	if err != nil {
		return nil, errors.Wrap(err, "find entry")
	}
	if e == nil {
		return nil, nil
	}

	var g *models.Group

	if e.GroupID != nil {
		if g, err = s.groups.Get(ctx, *e.GroupID); err != nil {
			return nil, errors.Wrap(err, "load entry group")
		}

		if g == nil || !g.IsActive || (groupCode != "" && g.Code != groupCode) {
			return nil, nil
		}
	} else if groupCode != "" {
		return nil, nil
	}

	if !entryCompatible(appVersion, e, g) {
		return nil, nil
	}

	return s.resolver.Resolve(ctx, e.Stored()).Value(), nil
}

// List returns the visible entries as a flat list filtered by keys and group codes.
// It returns an empty list while the module is disabled.
func (s *Service) List(ctx context.Context, q ListQuery) ([]FlatEntry, error) {
	out := []FlatEntry{}

	if !s.flag.Enabled(ctx) {
		return out, nil
	}

	groups, err := s.compatibleGroups(ctx, q.AppVersion)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListActive(ctx, "")
	if err != nil {
		return nil, errors.Wrap(err, "list active entries")
	}

	keys := toSet(q.Keys)
	codes := toSet(q.Groups)

	for i := range entries {
		e := &entries[i]

		if len(keys) > 0 && !keys[e.KeyName] {
			continue
		}

		g, ok := visibleGroup(groups, e, "")
		if !ok || !entryCompatible(q.AppVersion, e, g) {
			continue
		}

		if len(codes) > 0 && (g == nil || !codes[g.Code]) {
			continue
		}

		resolved := s.newEntry(ctx, e)

		flat := FlatEntry{
			Key:        resolved.Key,
			Type:       resolved.Type,
			Text:       resolved.Text,
			File:       resolved.File,
			JSON:       resolved.JSON,
			Products:   resolved.Products,
			Categories: resolved.Categories,
			Version:    resolved.Version,
		}
		if g != nil {
			flat.Group = nullable(g.Code)
		}

		out = append(out, flat)
	}

	return out, nil
}

// compatibleGroups indexes the active groups visible to appVersion by id.
func (s *Service) compatibleGroups(ctx context.Context, appVersion string) (map[uint]*models.Group, error) {
	groups, err := s.groups.ListActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list active groups")
	}

	out := make(map[uint]*models.Group, len(groups))

	for i := range groups {
		g := &groups[i]
		if version.IsCompatible(appVersion, g.Version) {
			out[g.ID] = g
		}
	}

	return out, nil
}

func (s *Service) newEntry(ctx context.Context, e *models.Entry) Entry {
	r := s.resolver.Resolve(ctx, e.Stored())

	return Entry{
		Key:        e.KeyName,
		Type:       r.Type,
		Text:       r.Text,
		File:       r.File,
		JSON:       r.JSON,
		Products:   r.Products,
		Categories: r.Categories,
		CMSPages:   r.CMSPages,
		Version:    nullable(e.Version),
	}
}

// visibleGroup returns the group of e from groups. ok is false when e belongs to a group
// that is not visible or, with a non-empty groupCode, when e is not in that group.
func visibleGroup(groups map[uint]*models.Group, e *models.Entry, groupCode string) (g *models.Group, ok bool) {
	if e.GroupID == nil {
		return nil, groupCode == ""
	}

	g, ok = groups[*e.GroupID]
	if !ok || (groupCode != "" && g.Code != groupCode) {
		return nil, false
	}

	return g, true
}

func entryCompatible(appVersion string, e *models.Entry, g *models.Group) bool {
	groupVersion := ""
	if g != nil {
		groupVersion = g.Version
	}

	return version.IsCompatible(appVersion, version.Effective(e.Version, groupVersion))
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if item != "" {
			set[item] = true
		}
	}

	return set
}
