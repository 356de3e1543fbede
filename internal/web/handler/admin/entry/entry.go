// Package entry provides the admin api for key-value entries.
package entry

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	controller "github.com/orkank/AppConfig/internal/db/controller/entry"
	"github.com/orkank/AppConfig/internal/db/models"
	"github.com/orkank/AppConfig/internal/value"
	"github.com/orkank/AppConfig/internal/web/handler"
)

const (
	// Path is the base path for entry management below the admin router.
	Path = "/entries"

	// RouteID addresses a single entry.
	RouteID = "/:id"
	// RouteStatus is the mass status update route.
	RouteStatus = "/status"

	// QueryGroupID filters by group id, "none" selects ungrouped entries.
	QueryGroupID = "group_id"
	// QueryValueType filters by value type.
	QueryValueType = "value_type"
	// QueryKeyName filters by key name.
	QueryKeyName = "key_name"

	ungrouped = "none"

	// ErrInvalidID is returned when the provided id parameter is invalid or non-positive.
	ErrInvalidID = "Invalid id"
	// ErrInvalidFilter is returned for unparsable list filters.
	ErrInvalidFilter = "Invalid filter"
	// ErrEntryNotFound is returned when an entry with the given id does not exist.
	ErrEntryNotFound = "Entry not found"
	// ErrFailedLoadEntries indicates an unexpected error occurred while loading entries.
	ErrFailedLoadEntries = "Failed to load entries"
	// ErrFailedSaveEntry indicates an unexpected error occurred while saving an entry.
	ErrFailedSaveEntry = "Failed to save entry"
	// ErrFailedDeleteEntry indicates the delete operation failed.
	ErrFailedDeleteEntry = "Failed to delete entry"
)

type (
	entryInput struct {
		KeyName           string `json:"key_name"            validate:"required,max=255"`
		GroupID           *uint  `json:"group_id"`
		IsActive          *bool  `json:"is_active"`
		Version           string `json:"version"             validate:"max=50"`
		ValueType         string `json:"value_type"          validate:"omitempty,oneof=text file json products category categories cms"`
		TextValue         string `json:"text_value"`
		FilePath          string `json:"file_path"           validate:"max=512"`
		JSONValue         string `json:"json_value"`
		ProductsValue     string `json:"products_value"`
		CategoriesValue   string `json:"categories_value"`
		CMSPagesValue     string `json:"cms_pages_value"`
		CMSIncludeContent bool   `json:"cms_include_content"`
	}

	statusInput struct {
		IDs      []uint `json:"ids"       validate:"required,min=1"`
		IsActive *bool  `json:"is_active" validate:"required"`
	}

	statusResult struct {
		Updated int64 `json:"updated"`
	}
)

// Service provides CRUD operations for entries.
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

// List returns the entries matching the query filters.
func (s *Service) List(c *fiber.Ctx) error {
	f := controller.Filter{
		ValueType: value.Type(c.Query(QueryValueType)),
		KeyName:   c.Query(QueryKeyName),
	}

	switch raw := c.Query(QueryGroupID); raw {
	case "":
	case ungrouped:
		f.Ungrouped = true
	default:
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return handler.JSONError(c, fiber.StatusBadRequest, ErrInvalidFilter)
		}

		groupID := uint(id)
		f.GroupID = &groupID
	}

	entries, err := controller.List(s.db.WithContext(c.UserContext()), f)
	if err != nil {
		log.Error().Err(err).Msg("failed to list entries")
		return handler.JSONError(c, fiber.StatusInternalServerError, ErrFailedLoadEntries)
	}

	return c.JSON(entries)
}

// Get returns a single entry.
func (s *Service) Get(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, ErrInvalidID)
	}

	e, err := controller.Get(s.db.WithContext(c.UserContext()), id)
	if err != nil {
		return s.fail(c, err, ErrFailedLoadEntries)
	}

	return c.JSON(e)
}

// Create creates an entry. The value type is inferred from the payload columns.
func (s *Service) Create(c *fiber.Ctx) error {
	var input entryInput
	if ok, err := handler.ParseAndValidate(c, s.validator, &input); !ok {
		return err
	}

	e := input.model()
	if err := controller.Create(s.db.WithContext(c.UserContext()), e); err != nil {
		return s.fail(c, err, ErrFailedSaveEntry)
	}

	log.Info().Str("key", e.KeyName).Uint("id", e.ID).Str("type", string(e.ValueType)).Msg("entry created")
	s.deps.Changed(c.UserContext())

	return c.Status(fiber.StatusCreated).JSON(e)
}

// Update overwrites an entry.
func (s *Service) Update(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, ErrInvalidID)
	}

	var input entryInput
	if ok, err := handler.ParseAndValidate(c, s.validator, &input); !ok {
		return err
	}

	e := input.model()
	e.ID = id

	if err := controller.Update(s.db.WithContext(c.UserContext()), e); err != nil {
		return s.fail(c, err, ErrFailedSaveEntry)
	}

	s.deps.Changed(c.UserContext())

	return c.JSON(e)
}

// Delete deletes an entry.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, ErrInvalidID)
	}

	if err := controller.Delete(s.db.WithContext(c.UserContext()), id); err != nil {
		return s.fail(c, err, ErrFailedDeleteEntry)
	}

	s.deps.Changed(c.UserContext())

	return c.SendStatus(fiber.StatusNoContent)
}

// Status activates or deactivates several entries.
func (s *Service) Status(c *fiber.Ctx) error {
	var input statusInput
	if ok, err := handler.ParseAndValidate(c, s.validator, &input); !ok {
		return err
	}

	n, err := controller.SetStatus(s.db.WithContext(c.UserContext()), input.IDs, *input.IsActive)
	if err != nil {
		return s.fail(c, err, ErrFailedSaveEntry)
	}

	s.deps.Changed(c.UserContext())

	return c.JSON(statusResult{Updated: n})
}

func (s *Service) fail(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, controller.ErrEntryNotFound):
		return handler.JSONError(c, fiber.StatusNotFound, ErrEntryNotFound)
	case errors.Is(err, controller.ErrEntryAlreadyExists):
		return handler.JSONError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, controller.ErrKeyNameEmpty),
		errors.Is(err, controller.ErrUnknownGroup),
		errors.Is(err, controller.ErrInvalidValueType),
		errors.Is(err, controller.ErrNoIDs):
		return handler.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	log.Error().Err(err).Msg(msg)

	return handler.JSONError(c, fiber.StatusInternalServerError, msg)
}

func (in entryInput) model() *models.Entry {
	e := &models.Entry{
		KeyName:           in.KeyName,
		GroupID:           in.GroupID,
		IsActive:          true,
		Version:           in.Version,
		ValueType:         value.Type(in.ValueType),
		TextValue:         in.TextValue,
		FilePath:          in.FilePath,
		JSONValue:         in.JSONValue,
		ProductsValue:     in.ProductsValue,
		CategoriesValue:   in.CategoriesValue,
		CMSPagesValue:     in.CMSPagesValue,
		CMSIncludeContent: in.CMSIncludeContent,
	}

	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}

	return e
}
