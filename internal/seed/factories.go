// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password shared by all seeded users.
const DefaultPassword = "password12345"

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// SkipBcrypt stores the plaintext password directly. Much faster for
	// large local seeds; those accounts cannot log in.
	SkipBcrypt bool
	// MaxDays bounds how far back seeded post timestamps are spread.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rnd  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Usernames are
// lowercased alphanumerics so they pass the same rules registration
// enforces. Optional override functions may modify the generated user
// before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := strings.ToLower(gofakeit.LetterN(6)) + fmt.Sprintf("%d", gofakeit.Number(100, 999))
	user := &models.User{
		Username: username,
		Email:    strings.ToLower(gofakeit.Email()),
	}

	if f.opts.SkipBcrypt {
		user.Password = DefaultPassword
	} else {
		hashed, err := repository.HashPassword(DefaultPassword)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	user.ResolveAvatar()
	return user, nil
}

// BuildPost constructs a post for the given author without persisting it,
// with its creation time spread over the recent past so feeds and search
// results have a realistic ordering.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:    strings.TrimSuffix(gofakeit.Sentence(5), "."),
		Body:     gofakeit.Paragraph(1, 3, 5, "\n"),
		AuthorID: author.ID,
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rnd.Intn(maxDays)
	hoursBack := f.rnd.Intn(24)
	minsBack := f.rnd.Intn(60)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample post for the given author.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author, overrides...)
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateFollow persists the edge author -> followed. Duplicate and
// self-follow edges are skipped rather than failing the run.
func (f *Factory) CreateFollow(author, followed *models.User) error {
	if author.ID == followed.ID {
		return nil
	}
	var count int64
	if err := f.db.Model(&models.Follow{}).
		Where("author_id = ? AND followed_id = ?", author.ID, followed.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return f.db.Create(&models.Follow{AuthorID: author.ID, FollowedID: followed.ID}).Error
}
