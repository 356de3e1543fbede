package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ParseAndValidate decodes the request body into dst and validates it.
// On failure the 400 reply has already been written and ok is false.
func ParseAndValidate(c *fiber.Ctx, v *validator.Validate, dst any) (ok bool, err error) {
	if err = c.BodyParser(dst); err != nil {
		return false, JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err = v.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, JSONError(c, fiber.StatusBadRequest, err.Error())
		}

		errorMessages := make([]string, len(validationErrors))
		for i, ve := range validationErrors {
			errorMessages[i] = "Field '" + ve.Field() + "' failed validation tag '" + ve.Tag() + "'"
		}

		return false, JSONError(c, fiber.StatusBadRequest, "validation failed", errorMessages...)
	}

	return true, nil
}

// ParseID reads the numeric :id route parameter.
func ParseID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}

	return uint(id), true
}
