package repository

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// FollowRepository manages directed follow edges between users.
type FollowRepository interface {
	Create(ctx context.Context, followedUsername string, authorID uint) error
	Delete(ctx context.Context, followedUsername string, authorID uint) error
	IsVisitorFollowing(ctx context.Context, followedID, visitorID uint) bool
	GetFollowersByID(ctx context.Context, id uint) ([]models.UserSummary, error)
	GetFollowingByID(ctx context.Context, id uint) ([]models.UserSummary, error)
	CountFollowersByID(ctx context.Context, id uint) (int64, error)
	CountFollowingByID(ctx context.Context, id uint) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge authorID -> followedUsername. Every applicable
// check is evaluated and collected; the duplicate and self-follow checks
// require a resolved target and are skipped when the lookup fails.
func (r *followRepository) Create(ctx context.Context, followedUsername string, authorID uint) error {
	followedID, errs, err := r.validateEdge(ctx, followedUsername, authorID, true)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return models.NewValidationError(errs...)
	}

	edge := &models.Follow{AuthorID: authorID, FollowedID: followedID}
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		return internalError(ctx, err)
	}
	cache.InvalidateFollowEdge(ctx, authorID, followedID)
	return nil
}

// Delete removes the edge authorID -> followedUsername.
func (r *followRepository) Delete(ctx context.Context, followedUsername string, authorID uint) error {
	followedID, errs, err := r.validateEdge(ctx, followedUsername, authorID, false)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return models.NewValidationError(errs...)
	}

	if err := r.db.WithContext(ctx).
		Where("author_id = ? AND followed_id = ?", authorID, followedID).
		Delete(&models.Follow{}).Error; err != nil {
		return internalError(ctx, err)
	}
	cache.InvalidateFollowEdge(ctx, authorID, followedID)
	return nil
}

// validateEdge resolves the target username and collects validation
// messages for a create (creating=true) or delete (creating=false) of the
// edge. The returned error is reserved for infrastructure failures.
func (r *followRepository) validateEdge(ctx context.Context, followedUsername string, authorID uint, creating bool) (uint, []string, error) {
	var errs []string

	followedUsername = strings.ToLower(strings.TrimSpace(followedUsername))

	var target models.User
	err := r.db.WithContext(ctx).Where("username = ?", followedUsername).First(&target).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, internalError(ctx, err)
		}
		errs = append(errs, "You cannot follow a user that does not exist.")
		// Without a resolved target the remaining checks would compare
		// against a missing id; skip them.
		return 0, errs, nil
	}

	exists, err2 := r.edgeExists(ctx, target.ID, authorID)
	if err2 != nil {
		return 0, nil, err2
	}
	if creating && exists {
		errs = append(errs, "You are already following this user.")
	} else if !creating && !exists {
		errs = append(errs, "You cannot stop following someone you do not already follow.")
	}

	if target.ID == authorID {
		errs = append(errs, "You cannot follow yourself.")
	}

	return target.ID, errs, nil
}

func (r *followRepository) edgeExists(ctx context.Context, followedID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("author_id = ? AND followed_id = ?", authorID, followedID).
		Count(&count).Error; err != nil {
		return false, internalError(ctx, err)
	}
	return count > 0, nil
}

// IsVisitorFollowing reports whether visitorID follows followedID. It never
// fails; absence and errors both read as false.
func (r *followRepository) IsVisitorFollowing(ctx context.Context, followedID, visitorID uint) bool {
	exists, err := r.edgeExists(ctx, followedID, visitorID)
	if err != nil {
		return false
	}
	return exists
}

// GetFollowersByID lists the users following id, projected to
// {username, avatar}.
func (r *followRepository) GetFollowersByID(ctx context.Context, id uint) ([]models.UserSummary, error) {
	return r.edgeUsers(ctx, "follows.followed_id", "follows.author_id", id)
}

// GetFollowingByID lists the users id follows, projected to
// {username, avatar}.
func (r *followRepository) GetFollowingByID(ctx context.Context, id uint) ([]models.UserSummary, error) {
	return r.edgeUsers(ctx, "follows.author_id", "follows.followed_id", id)
}

// edgeUsers joins follow edges against user records. matchCol selects which
// side of the edge equals id; joinCol is the side resolved to a user.
func (r *followRepository) edgeUsers(ctx context.Context, matchCol, joinCol string, id uint) ([]models.UserSummary, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.username, users.email").
		Joins("JOIN follows ON "+joinCol+" = users.id").
		Where(matchCol+" = ?", id).
		Scan(&users).Error; err != nil {
		return nil, internalError(ctx, err)
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, nil
}

// CountFollowersByID returns how many users follow id, cached.
func (r *followRepository) CountFollowersByID(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := cache.Aside(ctx, cache.FollowerCountKey(id), &count, cache.CountTTL, func() error {
		if err := r.db.WithContext(ctx).Model(&models.Follow{}).
			Where("followed_id = ?", id).Count(&count).Error; err != nil {
			return internalError(ctx, err)
		}
		return nil
	})
	return count, err
}

// CountFollowingByID returns how many users id follows, cached.
func (r *followRepository) CountFollowingByID(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := cache.Aside(ctx, cache.FollowingCountKey(id), &count, cache.CountTTL, func() error {
		if err := r.db.WithContext(ctx).Model(&models.Follow{}).
			Where("author_id = ?", id).Count(&count).Error; err != nil {
			return internalError(ctx, err)
		}
		return nil
	})
	return count, err
}
