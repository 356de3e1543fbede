// Package catalog serves catalog lookups for the entry pickers of the admin ui.
package catalog

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/orkank/AppConfig/internal/catalog"
	"github.com/orkank/AppConfig/internal/web/handler"
)

const (
	// Path is the base path of the lookups below the admin router.
	Path = "/catalog"

	// QueryStoreID selects the store view of product lookups.
	QueryStoreID = "store_id"
)

type productResult struct {
	ID    int64   `json:"id"`
	SKU   string  `json:"sku"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Service is the catalog lookup handler service.
type Service struct {
	handler.Service
	catalog handler.Catalog
	storeID int
}

// Handler is the catalog lookup handler.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app fiber.Router, deps *handler.Deps) error {
	if app == nil || deps == nil || deps.Catalog == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.catalog = deps.Catalog
	if deps.Cfg != nil {
		s.storeID = deps.Cfg.AppConfig.StoreID
	}

	app.Route(Path, func(router fiber.Router) {
		router.Get("/products/:id", s.Product)
		router.Get("/categories/:id", s.Category)
		router.Get("/cms/:id", s.CMSPage)
	})

	return nil
}

// Product looks up a product by id.
func (s *Service) Product(c *fiber.Ctx) error {
	id, ok := entityID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid id")
	}

	storeID := c.QueryInt(QueryStoreID, s.storeID)

	p, err := s.catalog.ProductByID(c.UserContext(), id, storeID)
	if err != nil {
		return failed(c, err, "product")
	}

	return c.JSON(productResult{ID: p.ID, SKU: p.SKU, Name: p.Name, Price: p.Price})
}

// Category looks up a category by id.
func (s *Service) Category(c *fiber.Ctx) error {
	id, ok := entityID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid id")
	}

	cat, err := s.catalog.CategoryByID(c.UserContext(), id)
	if err != nil {
		return failed(c, err, "category")
	}

	return c.JSON(cat)
}

// CMSPage looks up a cms page by id.
func (s *Service) CMSPage(c *fiber.Ctx) error {
	id, ok := entityID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, "Invalid id")
	}

	page, err := s.catalog.CMSPageByID(c.UserContext(), id)
	if err != nil {
		return failed(c, err, "cms page")
	}

	return c.JSON(page)
}

func entityID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)

	return id, err == nil && id > 0
}

func failed(c *fiber.Ctx, err error, what string) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return handler.JSONError(c, fiber.StatusNotFound, what+" not found")
	case errors.Is(err, catalog.ErrDisabled):
		return handler.JSONError(c, fiber.StatusServiceUnavailable, "catalog lookups are disabled")
	}

	log.Error().Err(err).Str("entity", what).Msg("catalog lookup failed")

	return handler.JSONError(c, fiber.StatusBadGateway, "catalog lookup failed")
}
