// Package public serves the configuration read API used by storefront clients.
package public

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/orkank/AppConfig/internal/appconfig"
	"github.com/orkank/AppConfig/internal/web/handler"
)

const (
	// Path is the prefix of the public routes.
	Path = "/appconfig"

	// DisabledMessage is the error body while the module is switched off.
	DisabledMessage = "App Config module is disabled."
)

// Service is the public config handler service.
type Service struct {
	handler.Service
	reader appconfig.Reader
}

// Handler is the public config handler.
var Handler = Service{}

// Init registers the public routes.
func (s *Service) Init(app fiber.Router, deps *handler.Deps) error {
	if app == nil || deps == nil || deps.Reader == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.reader = deps.Reader

	app.Route(Path, func(router fiber.Router) {
		router.Get("/config", s.Config)
		router.Get("/groups", s.Groups)
		router.Get("/value/:key", s.Value)
		router.Get("/list", s.List)
	})

	return nil
}

// Config returns ungrouped defaults and groups visible to appVersion.
func (s *Service) Config(c *fiber.Ctx) error {
	cfg, err := s.reader.GetConfig(c.UserContext(), appVersion(c), c.Query("groupCode"))
	if err != nil {
		return failed(c, err, "config")
	}

	return c.JSON(cfg)
}

// Groups returns the groups visible to appVersion.
func (s *Service) Groups(c *fiber.Ctx) error {
	groups, err := s.reader.GetGroups(c.UserContext(), appVersion(c))
	if err != nil {
		return failed(c, err, "groups")
	}

	return c.JSON(groups)
}

// Value returns {"value": ...} for a single key, null when absent.
func (s *Service) Value(c *fiber.Ctx) error {
	key, err := url.PathUnescape(c.Params("key"))
	if err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, "invalid key")
	}

	v, err := s.reader.GetValue(c.UserContext(), key, c.Query("groupCode"), appVersion(c))
	if err != nil {
		return failed(c, err, "value")
	}

	return c.JSON(fiber.Map{"value": v})
}

// List returns the flat entry list filtered by keys and groups.
func (s *Service) List(c *fiber.Ctx) error {
	entries, err := s.reader.List(c.UserContext(), appconfig.ListQuery{
		AppVersion: appVersion(c),
		Keys:       splitList(c.Query("keys")),
		Groups:     splitList(c.Query("groups")),
	})
	if err != nil {
		return failed(c, err, "list")
	}

	return c.JSON(entries)
}

func failed(c *fiber.Ctx, err error, what string) error {
	if errors.Is(err, appconfig.ErrModuleDisabled) {
		return handler.JSONError(c, fiber.StatusServiceUnavailable, DisabledMessage)
	}

	log.Error().Err(err).Str("endpoint", what).Msg("failed to read configuration")

	return handler.JSONError(c, fiber.StatusInternalServerError, "failed to read configuration")
}

// appVersion accepts both the REST and the GraphQL style parameter name.
func appVersion(c *fiber.Ctx) string {
	if v := c.Query("appVersion"); v != "" {
		return v
	}

	return c.Query("app_version")
}

func splitList(s string) []string {
	var out []string

	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
