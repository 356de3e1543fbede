package handler

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// JSONError replies status with msg.
func JSONError(c *fiber.Ctx, status int, msg string, details ...string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg, Details: details})
}
