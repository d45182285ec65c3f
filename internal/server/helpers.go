package server

import (
	"errors"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter as a positive uint. Malformed ids are
// rejected here, before any lookup reaches the store. On failure it writes
// a 404 response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewNotFoundError("Post"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// visitorID returns the authenticated user's id, or 0 for anonymous
// visitors.
func visitorID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// currentUserID returns the authenticated user's id. Routes behind
// AuthRequired always have one; the unauthorized fallback is defense against
// miswired routes.
func (s *Server) currentUserID(c *fiber.Ctx) (uint, error) {
	uid, ok := c.Locals("userID").(uint)
	if !ok || uid == 0 {
		_ = models.RespondWithError(c, models.NewUnauthorizedError("Authentication required"))
		return 0, errResponseWritten
	}
	return uid, nil
}
