// Package featureflag persists the module feature flag as a setting.
package featureflag

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/orkank/AppConfig/internal/db/controller/setting"
)

const (
	// SettingKeyEnabled is the setting name of the feature flag.
	SettingKeyEnabled = "appconfig/general/enabled"
)

type (
	// Settings is the persisted flag state.
	Settings struct {
		Enabled bool `json:"enabled"`
	}

	// Flag reads the persisted flag and falls back to Default when it was never set
	// or cannot be read.
	Flag struct {
		DB      *gorm.DB
		Default bool
	}
)

// Load loads the flag from the database.
func (s *Settings) Load(db *gorm.DB) error {
	st, err := setting.Get(db, SettingKeyEnabled)
	if err != nil {
		return err
	}

	return json.Unmarshal(st.Value, s)
}

// Save saves the flag to the database.
func (s *Settings) Save(db *gorm.DB) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = setting.Set(db, SettingKeyEnabled, data)

	return err
}

// Enabled reports the current flag state.
func (f Flag) Enabled(ctx context.Context) bool {
	if f.DB == nil {
		return f.Default
	}

	var s Settings

	err := s.Load(f.DB.WithContext(ctx))
	switch {
	case errors.Is(err, setting.ErrSettingNotFound):
		return f.Default
	case err != nil:
		log.Error().Err(err).Str("setting", SettingKeyEnabled).Msg("failed to load feature flag, using default")
		return f.Default
	}

	return s.Enabled
}

// Set persists enabled.
func (f Flag) Set(ctx context.Context, enabled bool) error {
	if f.DB == nil {
		return setting.ErrDBNil
	}

	s := Settings{Enabled: enabled}

	return s.Save(f.DB.WithContext(ctx))
}
