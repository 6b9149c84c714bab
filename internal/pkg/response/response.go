package response

import "github.com/gofiber/fiber/v2"

// Every response carries a status field so clients can branch on it
// without inspecting the HTTP status code.

// Success sends a success response, merging extra fields into the envelope
func Success(c *fiber.Ctx, fields fiber.Map) error {
	body := fiber.Map{"status": "success"}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(body)
}

// Error sends an error response with the given HTTP status code
func Error(c *fiber.Ctx, statusCode int, reason string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status": "error",
		"reason": reason,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, reason string) error {
	return Error(c, fiber.StatusBadRequest, reason)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, reason string) error {
	return Error(c, fiber.StatusUnauthorized, reason)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, reason string) error {
	return Error(c, fiber.StatusForbidden, reason)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, reason string) error {
	return Error(c, fiber.StatusNotFound, reason)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, reason string) error {
	return Error(c, fiber.StatusConflict, reason)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, reason string) error {
	return Error(c, fiber.StatusInternalServerError, reason)
}

// ValidationError sends a 500 response with per-field details.
// Storage-level validation detail is deliberately kept generic.
func ValidationError(c *fiber.Ctx, fields map[string]string) error {
	data := make([]fiber.Map, 0, len(fields))
	for field, msg := range fields {
		data = append(data, fiber.Map{"field": field, "error": msg})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status": "error",
		"reason": "A validation error occurred. Please check the submitted fields.",
		"data":   data,
	})
}
