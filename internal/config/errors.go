package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrUnsupportedGormEngine error if config db.gormEngine is not one of mysql, postgres or sqlite.
	ErrUnsupportedGormEngine = errors.New("config db.gormEngine must be mysql, postgres or sqlite")

	// ErrEmptyCatalogURL error if product enrichment is enabled without a catalog base url.
	ErrEmptyCatalogURL = errors.New("config catalog.baseURL can not be empty when catalog is enabled")

	// ErrEmptyRedisURL error if the response cache is enabled without a redis url.
	ErrEmptyRedisURL = errors.New("config cache.redisURL can not be empty when cache is enabled")
)
