package daemon

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/orkank/AppConfig/internal/config"
	"github.com/orkank/AppConfig/internal/db/controller/featureflag"
	"github.com/orkank/AppConfig/internal/db/controller/setting"
)

// seed persists the configured feature flag default if the flag was never saved.
func seed(cfg *config.Config, db *gorm.DB) error {
	var current featureflag.Settings

	err := current.Load(db)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, setting.ErrSettingNotFound):
		log.Warn().Err(err).Msg("stored feature flag is unreadable, leaving it untouched")
		return nil
	}

	s := featureflag.Settings{Enabled: cfg.AppConfig.Enabled}
	if err = s.Save(db); err != nil {
		return err
	}

	log.Info().Bool("enabled", s.Enabled).Msg("feature flag seeded from config")

	return nil
}
