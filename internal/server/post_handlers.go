package server

import (
	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postRepo.Create(c.UserContext(), validation.PostInput{
		Title: req.Title,
		Body:  req.Body,
	}, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": post.ID})
}

// GetPost handles GET /api/posts/:id. Anonymous visitors may read; the
// ownership flag is computed for authenticated ones.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.FindSingleByID(c.UserContext(), id, visitorID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.postRepo.Update(c.UserContext(), id, validation.PostInput{
		Title: req.Title,
		Body:  req.Body,
	}, userID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{"status": "success"})
}

// DeletePost handles DELETE /api/posts/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postRepo.Delete(c.UserContext(), id, userID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success"})
}

// SearchPosts handles GET /api/search?q=term.
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}

// GetFeed handles GET /api/feed: posts by everyone the visitor follows,
// newest first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	posts, err := s.postRepo.GetFeed(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}
