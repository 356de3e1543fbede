// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/orkank/AppConfig/internal/config"
)

// Create builds the Data Source Name for the configured gorm engine.
func Create(dbCfg *config.Config) string {
	db := dbCfg.DB

	switch db.GormEngine {
	case config.GormEnginePostgres:
		return postgres(db)
	case config.GormEngineSQLite:
		return sqlite(db)
	default:
		return mysql(db)
	}
}

func mysql(db config.DB) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		db.Extras,
	)
}

// postgres builds a key=value DSN, Extras holds additional space separated pairs like sslmode=disable.
func postgres(db config.DB) string {
	parts := []string{
		"host=" + quote(db.Host),
		fmt.Sprintf("port=%d", db.Port),
		"user=" + quote(db.User),
		"password=" + quote(db.Password),
		"dbname=" + quote(db.Name),
	}

	if extras := strings.TrimSpace(db.Extras); extras != "" {
		parts = append(parts, extras)
	}

	return strings.Join(parts, " ")
}

// sqlite uses Name as the database file, Extras as the query string.
func sqlite(db config.DB) string {
	if db.Extras == "" {
		return db.Name
	}

	return db.Name + "?" + strings.TrimPrefix(db.Extras, "?")
}

func quote(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}

	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)

	return "'" + r.Replace(v) + "'"
}

// Redact returns dsn with the password removed, for logging.
func Redact(dbCfg *config.Config) string {
	c := *dbCfg
	if c.DB.Password != "" {
		c.DB.Password = "xxxxx"
	}

	return Create(&c)
}
