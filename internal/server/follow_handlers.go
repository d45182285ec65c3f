package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:username/follow.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	if err := s.followRepo.Create(c.UserContext(), c.Params("username"), userID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success"})
}

// UnfollowUser handles DELETE /api/users/:username/follow.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	if err := s.followRepo.Delete(c.UserContext(), c.Params("username"), userID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success"})
}
