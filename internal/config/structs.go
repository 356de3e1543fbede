package config

import (
	"time"

	"github.com/orkank/AppConfig/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	AppConfig AppConfig
	Catalog   Catalog
	Cache     Cache
	Admin     Admin
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown in seconds
	FastShutDown   bool   // skip the load balancer grace period on shutdown
	URL            string // base url for the webserver
	CheckAliveURI  string // path answering load balancer health checks
}

// AppConfig holds the defaults of the configuration delivery feature.
type AppConfig struct {
	// Enabled is used when no persisted feature flag exists yet.
	Enabled bool
	// MediaBaseURL is the public base for file entries, e.g. https://shop.example/media/.
	MediaBaseURL string
	// StoreID is passed to product lookups.
	StoreID int
	// Currency is reported for every resolved product.
	Currency string
}

// Catalog holds the settings of the remote catalog used for product and cms enrichment.
type Catalog struct {
	Enabled bool
	BaseURL string        // e.g. https://shop.example/rest/default
	Token   string        // integration access token
	Timeout time.Duration // per request timeout
}

// Cache holds the settings of the optional redis response cache.
type Cache struct {
	Enabled  bool
	RedisURL string
	TTL      time.Duration
	Prefix   string
}

// Admin holds the settings of the admin api.
type Admin struct {
	// APIKeyHash is the argon2id hash of the admin api key.
	APIKeyHash string
}
