// Package settings serves the module feature flag and the effective daemon configuration.
package settings

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/orkank/AppConfig/internal/config"
	"github.com/orkank/AppConfig/internal/web/handler"
)

const (
	// Path is the base path of the settings routes below the admin router.
	Path = "/settings"

	// RouteEnabled reads and switches the feature flag.
	RouteEnabled = "/enabled"
	// RouteConfiguration shows the effective configuration with secrets redacted.
	RouteConfiguration = "/configuration"

	redacted = "********"
)

type enabledInput struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type enabledResult struct {
	Enabled bool `json:"enabled"`
}

// Service is the settings handler service.
type Service struct {
	handler.Service
	deps      *handler.Deps
	cfg       *config.Config
	flag      handler.FlagStore
	validator *validator.Validate
}

// Handler is the settings handler.
var Handler = Service{}

// Init initializes the settings handler.
func (s *Service) Init(app fiber.Router, deps *handler.Deps) error {
	if app == nil || deps == nil || deps.Flag == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.deps = deps
	s.cfg = deps.Cfg
	s.flag = deps.Flag
	s.validator = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Get(RouteEnabled, s.GetEnabled)
		router.Put(RouteEnabled, s.PutEnabled)
		router.Get(RouteConfiguration, s.Configuration)
	})

	return nil
}

// GetEnabled reports whether the module serves configuration.
func (s *Service) GetEnabled(c *fiber.Ctx) error {
	return c.JSON(enabledResult{Enabled: s.flag.Enabled(c.UserContext())})
}

// PutEnabled switches the module on or off.
func (s *Service) PutEnabled(c *fiber.Ctx) error {
	var input enabledInput
	if ok, err := handler.ParseAndValidate(c, s.validator, &input); !ok {
		return err
	}

	if err := s.flag.Set(c.UserContext(), *input.Enabled); err != nil {
		log.Error().Err(err).Msg("failed to save feature flag")
		return handler.JSONError(c, fiber.StatusInternalServerError, "Failed to save settings")
	}

	log.Info().Bool("enabled", *input.Enabled).Msg("app config module switched")
	s.deps.Changed(c.UserContext())

	return c.JSON(enabledResult{Enabled: *input.Enabled})
}

// Configuration renders the effective configuration as json, or toml with ?format=toml.
func (s *Service) Configuration(c *fiber.Ctx) error {
	if s.cfg == nil {
		return handler.JSONError(c, fiber.StatusNotFound, "No configuration loaded")
	}

	cfg := redact(*s.cfg)

	if c.Query("format") != "toml" {
		return c.JSON(cfg)
	}

	out, err := config.DumpConfig(&cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to render configuration")
		return handler.JSONError(c, fiber.StatusInternalServerError, "Failed to render configuration")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	return c.SendString(out)
}

func redact(cfg config.Config) config.Config {
	for _, secret := range []*string{&cfg.DB.Password, &cfg.Catalog.Token, &cfg.Admin.APIKeyHash} {
		if *secret != "" {
			*secret = redacted
		}
	}

	return cfg
}
