package repository

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/validation"

	"gorm.io/gorm"
)

// PostRepository manages post documents and their aggregated reads.
type PostRepository interface {
	Create(ctx context.Context, in validation.PostInput, authorID uint) (*models.Post, error)
	Update(ctx context.Context, id uint, in validation.PostInput, visitorID uint) error
	Delete(ctx context.Context, id uint, visitorID uint) error
	FindSingleByID(ctx context.Context, id uint, visitorID uint) (*models.Post, error)
	FindByAuthorID(ctx context.Context, authorID uint) ([]models.Post, error)
	Search(ctx context.Context, term string) ([]models.Post, error)
	GetFeed(ctx context.Context, userID uint) ([]models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// projectAuthor applies the shared read projection: the author summary and
// the per-request ownership flag are attached and the raw joined user record
// is stripped, so callers never see join artifacts.
func projectAuthor(posts []models.Post, visitorID uint) {
	for i := range posts {
		p := &posts[i]
		if p.AuthorUser != nil {
			p.Author = p.AuthorUser.Summary()
		}
		p.IsVisitorOwner = visitorID != 0 && p.AuthorID == visitorID
		p.AuthorUser = nil
	}
}

// Create sanitizes and validates the input, stamps the creation time, and
// persists the post owned by authorID.
func (r *postRepository) Create(ctx context.Context, in validation.PostInput, authorID uint) (*models.Post, error) {
	cleaned := validation.CleanPost(in)
	if errs := validation.ValidatePost(cleaned); len(errs) > 0 {
		return nil, models.NewValidationError(errs...)
	}

	post := &models.Post{
		Title:    cleaned.Title,
		Body:     cleaned.Body,
		AuthorID: authorID,
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, internalError(ctx, err)
	}
	cache.InvalidatePostCount(ctx, authorID)
	return post, nil
}

// Update rewrites title and body of an owned post. Author and creation date
// are immutable; a non-owner gets a permission failure distinct from
// validation failure.
func (r *postRepository) Update(ctx context.Context, id uint, in validation.PostInput, visitorID uint) error {
	post, err := r.load(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != visitorID {
		return models.NewPermissionError()
	}

	cleaned := validation.CleanPost(in)
	if errs := validation.ValidatePost(cleaned); len(errs) > 0 {
		return models.NewValidationError(errs...)
	}

	if err := r.db.WithContext(ctx).Model(post).
		Updates(map[string]interface{}{
			"title": cleaned.Title,
			"body":  cleaned.Body,
		}).Error; err != nil {
		return internalError(ctx, err)
	}
	return nil
}

// Delete removes an owned post.
func (r *postRepository) Delete(ctx context.Context, id uint, visitorID uint) error {
	post, err := r.load(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != visitorID {
		return models.NewPermissionError()
	}

	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return internalError(ctx, err)
	}
	cache.InvalidatePostCount(ctx, post.AuthorID)
	return nil
}

// FindSingleByID returns one post with the author projection and the
// visitor's ownership flag. Malformed ids are rejected before any lookup.
func (r *postRepository) FindSingleByID(ctx context.Context, id uint, visitorID uint) (*models.Post, error) {
	if id == 0 {
		return nil, models.NewNotFoundError("Post")
	}

	var post models.Post
	if err := r.db.WithContext(ctx).Preload("AuthorUser").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, internalError(ctx, err)
	}

	posts := []models.Post{post}
	projectAuthor(posts, visitorID)
	return &posts[0], nil
}

// FindByAuthorID lists an author's posts, newest first.
func (r *postRepository) FindByAuthorID(ctx context.Context, authorID uint) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.db.WithContext(ctx).
		Preload("AuthorUser").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, internalError(ctx, err)
	}
	projectAuthor(posts, 0)
	return posts, nil
}

// Search runs a full-text search over title and body ordered by relevance.
// On PostgreSQL this uses tsvector ranking; other dialects (the in-memory
// test database) fall back to LIKE matching ordered by recency. A blank
// term yields an empty result, never an error.
func (r *postRepository) Search(ctx context.Context, term string) ([]models.Post, error) {
	defer observability.TrackQuery("search", "posts")()

	term = strings.TrimSpace(term)
	posts := []models.Post{}
	if term == "" {
		return posts, nil
	}

	q := r.db.WithContext(ctx).Preload("AuthorUser")
	if r.db.Dialector.Name() == "postgres" {
		matchExpr := "to_tsvector('english', title || ' ' || body) @@ plainto_tsquery('english', ?)"
		q = q.Where(matchExpr, term).
			Order(gorm.Expr("ts_rank(to_tsvector('english', title || ' ' || body), plainto_tsquery('english', ?)) DESC", term))
	} else {
		like := "%" + escapeLike(term) + "%"
		q = q.Where("title LIKE ? ESCAPE '\\' OR body LIKE ? ESCAPE '\\'", like, like).
			Order("created_at DESC")
	}

	if err := q.Find(&posts).Error; err != nil {
		return nil, internalError(ctx, err)
	}
	projectAuthor(posts, 0)
	return posts, nil
}

// GetFeed lists the posts of everyone userID follows, newest first. A user
// following nobody gets an empty list.
func (r *postRepository) GetFeed(ctx context.Context, userID uint) ([]models.Post, error) {
	defer observability.TrackQuery("feed", "posts")()

	followed := r.db.Model(&models.Follow{}).
		Select("followed_id").
		Where("author_id = ?", userID)

	posts := []models.Post{}
	if err := r.db.WithContext(ctx).
		Preload("AuthorUser").
		Where("author_id IN (?)", followed).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, internalError(ctx, err)
	}
	projectAuthor(posts, userID)
	return posts, nil
}

// CountByAuthor returns how many posts an author has written, cached.
func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := cache.Aside(ctx, cache.PostCountKey(authorID), &count, cache.CountTTL, func() error {
		if err := r.db.WithContext(ctx).Model(&models.Post{}).
			Where("author_id = ?", authorID).Count(&count).Error; err != nil {
			return internalError(ctx, err)
		}
		return nil
	})
	return count, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so a searched term matches
// literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// load fetches a post without projection for ownership checks.
func (r *postRepository) load(ctx context.Context, id uint) (*models.Post, error) {
	if id == 0 {
		return nil, models.NewNotFoundError("Post")
	}
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, internalError(ctx, err)
	}
	return &post, nil
}
