// Package cache caches config and group responses in a Backend.
//
// Keys embed a generation counter. Invalidate bumps the counter so every earlier
// response becomes unreachable and expires on its own.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/orkank/AppConfig/internal/appconfig"
)

const (
	genKey      = "gen"
	configKind  = "config"
	groupsKind  = "groups"
	defaultTTL  = 5 * time.Minute
	defaultName = "appconfig"
)

// Cached decorates an appconfig.Reader with a response cache.
type Cached struct {
	next    appconfig.Reader
	backend Backend
	ttl     time.Duration
	prefix  string
}

var _ appconfig.Reader = (*Cached)(nil)

// New creates a Cached reader.
func New(next appconfig.Reader, backend Backend, ttl time.Duration, prefix string) *Cached {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	if prefix == "" {
		prefix = defaultName
	}

	return &Cached{next: next, backend: backend, ttl: ttl, prefix: prefix}
}

// Enabled implements appconfig.Reader.
func (c *Cached) Enabled(ctx context.Context) bool {
	return c.next.Enabled(ctx)
}

// GetConfig implements appconfig.Reader. Cached responses are only served while the module is enabled.
func (c *Cached) GetConfig(ctx context.Context, appVersion, groupCode string) (*appconfig.Config, error) {
	if !c.next.Enabled(ctx) {
		return nil, appconfig.ErrModuleDisabled
	}

	return cached(ctx, c, c.key(ctx, configKind, appVersion, groupCode), func() (*appconfig.Config, error) {
		return c.next.GetConfig(ctx, appVersion, groupCode)
	})
}

// GetGroups implements appconfig.Reader.
func (c *Cached) GetGroups(ctx context.Context, appVersion string) (map[string]appconfig.GroupInfo, error) {
	if !c.next.Enabled(ctx) {
		return nil, appconfig.ErrModuleDisabled
	}

	return cached(ctx, c, c.key(ctx, groupsKind, appVersion), func() (map[string]appconfig.GroupInfo, error) {
		return c.next.GetGroups(ctx, appVersion)
	})
}

// GetValue implements appconfig.Reader. Values are not cached.
func (c *Cached) GetValue(ctx context.Context, key, groupCode, appVersion string) (any, error) {
	return c.next.GetValue(ctx, key, groupCode, appVersion)
}

// List implements appconfig.Reader. Lists are not cached.
func (c *Cached) List(ctx context.Context, q appconfig.ListQuery) ([]appconfig.FlatEntry, error) {
	return c.next.List(ctx, q)
}

// Invalidate drops every cached response.
func (c *Cached) Invalidate(ctx context.Context) error {
	_, err := c.backend.Incr(ctx, c.prefix+":"+genKey)

	return err
}

// key builds the key of a response. An empty key disables caching for the call.
func (c *Cached) key(ctx context.Context, kind string, parts ...string) string {
	gen, err := c.backend.Get(ctx, c.prefix+":"+genKey)
	switch {
	case errors.Is(err, ErrMiss):
		gen = "0"
	case err != nil:
		log.Warn().Err(err).Msg("cache backend unavailable, serving uncached")
		return ""
	}

	escaped := make([]string, 0, len(parts)+3)
	escaped = append(escaped, c.prefix, gen, kind)

	for _, p := range parts {
		escaped = append(escaped, url.QueryEscape(p))
	}

	return strings.Join(escaped, ":")
}

func cached[T any](ctx context.Context, c *Cached, key string, load func() (T, error)) (T, error) {
	if key != "" {
		raw, err := c.backend.Get(ctx, key)
		if err == nil {
			var v T
			if err = json.Unmarshal([]byte(raw), &v); err == nil {
				return v, nil
			}
		}

		if err != nil && !errors.Is(err, ErrMiss) {
			log.Debug().Err(err).Str("key", key).Msg("cache read failed")
		}
	}

	v, err := load()
	if err != nil || key == "" {
		return v, err
	}

	raw, err := json.Marshal(v)
	if err == nil {
		err = c.backend.Set(ctx, key, string(raw), c.ttl)
	}

	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("cache write failed")
	}

	return v, nil
}
