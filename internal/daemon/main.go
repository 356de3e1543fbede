// Package daemon assembles storage, catalog, resolver, cache and web service into the running server.
package daemon

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/orkank/AppConfig/internal/appconfig"
	"github.com/orkank/AppConfig/internal/cache"
	"github.com/orkank/AppConfig/internal/catalog"
	"github.com/orkank/AppConfig/internal/config"
	"github.com/orkank/AppConfig/internal/db/controller/featureflag"
	"github.com/orkank/AppConfig/internal/db/store"
	"github.com/orkank/AppConfig/internal/value"
	"github.com/orkank/AppConfig/internal/web"
	"github.com/orkank/AppConfig/internal/web/handler"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	redis      *cache.Redis
	webService *web.Service
}

// Start serves http until SIGINT or SIGTERM and releases all resources afterwards.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	err := d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))

	d.Close()

	return err
}

// Close releases the database and cache connections.
func (d *Daemon) Close() {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}

	if d.db != nil {
		CloseDB(d.db)
	}
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	d := &Daemon{cfg: cfg, db: db}

	if err = seed(cfg, db); err != nil {
		d.Close()
		return nil, errors.Wrap(err, "failed to seed settings")
	}

	cat := newCatalog(cfg)
	flag := featureflag.Flag{DB: db, Default: cfg.AppConfig.Enabled}
	resolver := value.NewResolver(value.Collaborators{
		Products: cat,
		Stock:    cat,
		Prices:   cat,
		Images:   cat,
		CMS:      cat,
		Media:    catalog.MediaURL(cfg.AppConfig.MediaBaseURL),
		Currency: catalog.Currency(cfg.AppConfig.Currency),
		StoreID:  cfg.AppConfig.StoreID,
	})

	deps := &handler.Deps{
		DB:      db,
		Reader:  appconfig.New(store.Groups{DB: db}, store.Entries{DB: db}, resolver, flag),
		Flag:    flag,
		Catalog: cat,
	}

	if cfg.Cache.Enabled {
		if d.redis, err = cache.NewRedis(cfg.Cache.RedisURL); err != nil {
			d.Close()
			return nil, errors.Wrap(err, "failed to connect redis")
		}

		cached := cache.New(deps.Reader, d.redis, cfg.Cache.TTL, cfg.Cache.Prefix)
		deps.Reader = cached
		deps.Invalidate = cached.Invalidate

		log.Info().Dur("ttl", cfg.Cache.TTL).Msg("response cache enabled")
	}

	if d.webService, err = web.New(cfg, deps); err != nil {
		d.Close()
		return nil, err
	}

	return d, nil
}

// catalogRepos is everything the resolver and the admin pickers need from a catalog.
type catalogRepos interface {
	catalog.ProductRepo
	catalog.StockRepo
	catalog.PriceRepo
	catalog.ImageRepo
	catalog.CategoryRepo
	catalog.CMSRepo
}

func newCatalog(cfg *config.Config) catalogRepos {
	if !cfg.Catalog.Enabled {
		log.Info().Msg("catalog disabled: product and cms references are served unenriched")
		return catalog.Disabled{}
	}

	return catalog.NewClient(catalog.ClientConfig{
		BaseURL:  cfg.Catalog.BaseURL,
		Token:    cfg.Catalog.Token,
		Timeout:  cfg.Catalog.Timeout,
		MediaURL: catalog.MediaURL(cfg.AppConfig.MediaBaseURL),
	})
}
