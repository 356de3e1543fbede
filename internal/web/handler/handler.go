// Package handler holds what the web handlers share: their dependencies and JSON error replies.
package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/orkank/AppConfig/internal/appconfig"
	"github.com/orkank/AppConfig/internal/catalog"
	"github.com/orkank/AppConfig/internal/config"
)

const (
	// RouterRootPath is the root path of a route group.
	RouterRootPath = "/"

	// ErrNilDepsFatalLogMsg is used if app or a required dependency is nil.
	ErrNilDepsFatalLogMsg = "app or a required handler dependency is nil"
)

type (
	// FlagStore reads and persists the module feature flag.
	FlagStore interface {
		Enabled(ctx context.Context) bool
		Set(ctx context.Context, enabled bool) error
	}

	// Catalog serves the lookups of the admin pickers.
	Catalog interface {
		catalog.ProductRepo
		catalog.CategoryRepo
		catalog.CMSRepo
	}

	// Deps are the dependencies handlers are initialized with.
	Deps struct {
		Cfg     *config.Config
		DB      *gorm.DB
		Reader  appconfig.Reader
		Flag    FlagStore
		Catalog Catalog
		// Invalidate drops cached responses after a write. Optional.
		Invalidate func(ctx context.Context) error
	}

	// Service is the interface for a web handler service.
	Service interface {
		Init(app fiber.Router, deps *Deps) error
	}
)

// Changed runs Invalidate after a successful write.
func (d *Deps) Changed(ctx context.Context) {
	if d == nil || d.Invalidate == nil {
		return
	}

	if err := d.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate response cache")
	}
}
