package utils

import (
	"errors"
	"net/http"

	"cosmolearn/backend/progression"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse is the envelope for successful answers
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope for errors
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Success creates a successful JSON response
func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// Error creates a JSON error response
func Error(c *fiber.Ctx, status int, err error, details ...interface{}) error {
	response := ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: err.Error(),
	}

	if len(details) > 0 {
		response.Details = details[0]
	}

	return c.Status(status).JSON(response)
}

// ProgressionError maps a progression core error onto the right HTTP
// status. Core errors are never fatal; they surface as client errors.
func ProgressionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, progression.ErrInvalidState):
		return Error(c, fiber.StatusConflict, err)
	case errors.Is(err, progression.ErrInvalidInput):
		return Error(c, fiber.StatusBadRequest, err)
	case errors.Is(err, progression.ErrSessionNotFound):
		return Error(c, fiber.StatusNotFound, err)
	case errors.Is(err, progression.ErrStorageUnavailable):
		// Non-fatal: the operation succeeded in memory.
		return nil
	default:
		return Error(c, fiber.StatusInternalServerError, err)
	}
}

// NotFound sends a 404 Not Found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, fiber.NewError(fiber.StatusNotFound, message))
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, fiber.NewError(fiber.StatusBadRequest, message))
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, fiber.NewError(fiber.StatusUnauthorized, message))
}
