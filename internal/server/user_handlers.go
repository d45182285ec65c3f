package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/users/:username: the public user record plus
// the shared profile aggregates (post/follower/following counts and whether
// the visitor follows this user).
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := s.userRepo.FindByUsername(ctx, c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	postCount, err := s.postRepo.CountByAuthor(ctx, user.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	followerCount, err := s.followRepo.CountFollowersByID(ctx, user.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	followingCount, err := s.followRepo.CountFollowingByID(ctx, user.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	isFollowing := false
	if vid := visitorID(c); vid != 0 {
		isFollowing = s.followRepo.IsVisitorFollowing(ctx, user.ID, vid)
	}

	return c.JSON(fiber.Map{
		"user":            user,
		"post_count":      postCount,
		"follower_count":  followerCount,
		"following_count": followingCount,
		"is_following":    isFollowing,
	})
}

// GetProfilePosts handles GET /api/users/:username/posts.
func (s *Server) GetProfilePosts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := s.userRepo.FindByUsername(ctx, c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	posts, err := s.postRepo.FindByAuthorID(ctx, user.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}

// GetProfileFollowers handles GET /api/users/:username/followers.
func (s *Server) GetProfileFollowers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := s.userRepo.FindByUsername(ctx, c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	followers, err := s.followRepo.GetFollowersByID(ctx, user.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(followers)
}

// GetProfileFollowing handles GET /api/users/:username/following.
func (s *Server) GetProfileFollowing(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := s.userRepo.FindByUsername(ctx, c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	following, err := s.followRepo.GetFollowingByID(ctx, user.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(following)
}
