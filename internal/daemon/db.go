package daemon

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/orkank/AppConfig/internal/config"
	"github.com/orkank/AppConfig/internal/db/dsn"
	"github.com/orkank/AppConfig/internal/db/models"
	gormlog "github.com/orkank/AppConfig/internal/logger/adapter/gorm"
)

// OpenDB connects to the configured database and migrates the schema.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	source := dsn.Create(cfg)

	switch cfg.DB.GormEngine {
	case config.GormEnginePostgres:
		dialector = gormpostgres.Open(source)
	case config.GormEngineSQLite:
		dialector = sqlite.Open(source)
	default:
		dialector = gormmysql.Open(source)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlog.New(cfg.DB.LogQueries)})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect database %s", dsn.Redact(cfg))
	}

	if err = db.AutoMigrate(models.All()...); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	log.Info().Str("engine", cfg.DB.GormEngine).Msg("database ready")

	return db, nil
}

// CloseDB closes the connection pool of db.
func CloseDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}

	if err = sqlDB.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close database")
	}
}
