// Package group provides the admin api for configuration groups (CRUD and mass status).
package group

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	controller "github.com/orkank/AppConfig/internal/db/controller/group"
	"github.com/orkank/AppConfig/internal/db/models"
	"github.com/orkank/AppConfig/internal/web/handler"
)

const (
	// Path is the base path for group management below the admin router.
	Path = "/groups"

	// RouteID addresses a single group.
	RouteID = "/:id"
	// RouteStatus is the mass status update route.
	RouteStatus = "/status"

	// ErrInvalidID is returned when the provided id parameter is invalid or non-positive.
	ErrInvalidID = "Invalid id"
	// ErrGroupNotFound is returned when a group with the given id does not exist.
	ErrGroupNotFound = "Group not found"
	// ErrFailedLoadGroups indicates an unexpected error occurred while loading groups.
	ErrFailedLoadGroups = "Failed to load groups"
	// ErrFailedSaveGroup indicates an unexpected error occurred while saving a group.
	ErrFailedSaveGroup = "Failed to save group"
	// ErrFailedDeleteGroup indicates the delete operation failed.
	ErrFailedDeleteGroup = "Failed to delete group"
)

// Service provides CRUD operations for groups.
type Service struct {
	handler.Service
	deps      *handler.Deps
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app fiber.Router, deps *handler.Deps) error {
	if app == nil || deps == nil || deps.DB == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.deps = deps
	s.db = deps.DB
	s.validator = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.List)
		router.Post(handler.RouterRootPath, s.Create)
		router.Post(RouteStatus, s.Status)
		router.Get(RouteID, s.Get)
		router.Put(RouteID, s.Update)
		router.Delete(RouteID, s.Delete)
	})

	return nil
}

// List returns all groups ordered by name.
func (s *Service) List(c *fiber.Ctx) error {
	groups, err := controller.List(s.db.WithContext(c.UserContext()))
	if err != nil {
		log.Error().Err(err).Msg("failed to list groups")
		return handler.JSONError(c, fiber.StatusInternalServerError, ErrFailedLoadGroups)
	}

	return c.JSON(groups)
}

// Get returns a single group.
func (s *Service) Get(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, ErrInvalidID)
	}

	g, err := controller.Get(s.db.WithContext(c.UserContext()), id)
	if err != nil {
		return s.fail(c, err, ErrFailedLoadGroups)
	}

	return c.JSON(g)
}

// Create creates a group. Groups are active unless is_active is false.
func (s *Service) Create(c *fiber.Ctx) error {
	var input groupInput
	if ok, err := handler.ParseAndValidate(c, s.validator, &input); !ok {
		return err
	}

	g := input.model()
	if err := controller.Create(s.db.WithContext(c.UserContext()), g); err != nil {
		return s.fail(c, err, ErrFailedSaveGroup)
	}

	log.Info().Str("code", g.Code).Uint("id", g.ID).Msg("group created")
	s.deps.Changed(c.UserContext())

	return c.Status(fiber.StatusCreated).JSON(g)
}

// Update overwrites the editable fields of a group.
func (s *Service) Update(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, ErrInvalidID)
	}

	var input groupInput
	if ok, err := handler.ParseAndValidate(c, s.validator, &input); !ok {
		return err
	}

	g := input.model()
	g.ID = id

	if err := controller.Update(s.db.WithContext(c.UserContext()), g); err != nil {
		return s.fail(c, err, ErrFailedSaveGroup)
	}

	s.deps.Changed(c.UserContext())

	return c.JSON(g)
}

// Delete deletes a group with all of its entries.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, ErrInvalidID)
	}

	entries, err := controller.Delete(s.db.WithContext(c.UserContext()), id)
	if err != nil {
		return s.fail(c, err, ErrFailedDeleteGroup)
	}

	log.Info().Uint("id", id).Int64("entries", entries).Msg("group deleted")
	s.deps.Changed(c.UserContext())

	return c.JSON(deleteResult{Deleted: true, DeletedEntries: entries})
}

// Status activates or deactivates several groups.
func (s *Service) Status(c *fiber.Ctx) error {
	var input statusInput
	if ok, err := handler.ParseAndValidate(c, s.validator, &input); !ok {
		return err
	}

	n, err := controller.SetStatus(s.db.WithContext(c.UserContext()), input.IDs, *input.IsActive)
	if err != nil {
		return s.fail(c, err, ErrFailedSaveGroup)
	}

	s.deps.Changed(c.UserContext())

	return c.JSON(statusResult{Updated: n})
}

func (s *Service) fail(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, controller.ErrGroupNotFound):
		return handler.JSONError(c, fiber.StatusNotFound, ErrGroupNotFound)
	case errors.Is(err, controller.ErrGroupCodeExists):
		return handler.JSONError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, controller.ErrGroupNameEmpty),
		errors.Is(err, controller.ErrGroupCodeEmpty),
		errors.Is(err, controller.ErrNoIDs):
		return handler.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	log.Error().Err(err).Msg(msg)

	return handler.JSONError(c, fiber.StatusInternalServerError, msg)
}

func (in groupInput) model() *models.Group {
	g := &models.Group{
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
		IsActive:    true,
		Version:     in.Version,
	}

	if in.IsActive != nil {
		g.IsActive = *in.IsActive
	}

	return g
}
