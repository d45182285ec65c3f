package server

import (
	"net/http"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	s, db := newTestServer(t)
	author := createTestUser(t, db, "alice", "alice@example.com")

	app := fiber.New()
	app.Post("/posts", asUser(author.ID), s.CreatePost)

	t.Run("Success", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/posts", map[string]string{
			"title": "First post",
			"body":  "Some content",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body struct {
			ID uint `json:"id"`
		}
		decodeBody(t, resp, &body)
		assert.NotZero(t, body.ID)

		var stored models.Post
		require.NoError(t, db.First(&stored, body.ID).Error)
		assert.Equal(t, author.ID, stored.AuthorID)
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/posts", map[string]string{})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetPost(t *testing.T) {
	s, db := newTestServer(t)
	alice := createTestUser(t, db, "alice", "alice@example.com")
	bob := createTestUser(t, db, "bob", "bob@example.com")

	post := &models.Post{Title: "Readable", Body: "Body", AuthorID: alice.ID, CreatedAt: time.Now()}
	require.NoError(t, db.Create(post).Error)

	t.Run("AnonymousVisitor", func(t *testing.T) {
		app := fiber.New()
		app.Get("/posts/:id", s.GetPost)

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/posts/1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Title          string             `json:"title"`
			Author         models.UserSummary `json:"author"`
			IsVisitorOwner bool               `json:"is_visitor_owner"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "Readable", body.Title)
		assert.Equal(t, "alice", body.Author.Username)
		assert.False(t, body.IsVisitorOwner)
	})

	t.Run("OwnerGetsFlag", func(t *testing.T) {
		app := fiber.New()
		app.Get("/posts/:id", asUser(alice.ID), s.GetPost)

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/posts/1", nil))
		require.NoError(t, err)

		var body struct {
			IsVisitorOwner bool `json:"is_visitor_owner"`
		}
		decodeBody(t, resp, &body)
		assert.True(t, body.IsVisitorOwner)
	})

	t.Run("OtherVisitorNoFlag", func(t *testing.T) {
		app := fiber.New()
		app.Get("/posts/:id", asUser(bob.ID), s.GetPost)

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/posts/1", nil))
		require.NoError(t, err)

		var body struct {
			IsVisitorOwner bool `json:"is_visitor_owner"`
		}
		decodeBody(t, resp, &body)
		assert.False(t, body.IsVisitorOwner)
	})

	t.Run("MalformedID", func(t *testing.T) {
		app := fiber.New()
		app.Get("/posts/:id", s.GetPost)

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/posts/not-a-number", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Missing", func(t *testing.T) {
		app := fiber.New()
		app.Get("/posts/:id", s.GetPost)

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/posts/9999", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdatePost(t *testing.T) {
	s, db := newTestServer(t)
	alice := createTestUser(t, db, "alice", "alice@example.com")
	bob := createTestUser(t, db, "bob", "bob@example.com")

	post := &models.Post{Title: "Original", Body: "Body", AuthorID: alice.ID, CreatedAt: time.Now()}
	require.NoError(t, db.Create(post).Error)

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		app := fiber.New()
		app.Put("/posts/:id", asUser(bob.ID), s.UpdatePost)

		req := jsonRequest(t, http.MethodPut, "/posts/1", map[string]string{
			"title": "Hacked", "body": "Body",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("OwnerCanUpdate", func(t *testing.T) {
		app := fiber.New()
		app.Put("/posts/:id", asUser(alice.ID), s.UpdatePost)

		req := jsonRequest(t, http.MethodPut, "/posts/1", map[string]string{
			"title": "Revised", "body": "New body",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var stored models.Post
		require.NoError(t, db.First(&stored, post.ID).Error)
		assert.Equal(t, "Revised", stored.Title)
	})
}

func TestDeletePost(t *testing.T) {
	s, db := newTestServer(t)
	alice := createTestUser(t, db, "alice", "alice@example.com")
	bob := createTestUser(t, db, "bob", "bob@example.com")

	post := &models.Post{Title: "Doomed", Body: "Body", AuthorID: alice.ID, CreatedAt: time.Now()}
	require.NoError(t, db.Create(post).Error)

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		app := fiber.New()
		app.Delete("/posts/:id", asUser(bob.ID), s.DeletePost)

		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/posts/1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("OwnerCanDelete", func(t *testing.T) {
		app := fiber.New()
		app.Delete("/posts/:id", asUser(alice.ID), s.DeletePost)

		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/posts/1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var count int64
		db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count)
		assert.Zero(t, count)
	})
}

func TestSearchPosts(t *testing.T) {
	s, db := newTestServer(t)
	alice := createTestUser(t, db, "alice", "alice@example.com")

	require.NoError(t, db.Create(&models.Post{
		Title: "Gardening tips", Body: "Tomatoes love sun",
		AuthorID: alice.ID, CreatedAt: time.Now(),
	}).Error)

	app := fiber.New()
	app.Get("/search", s.SearchPosts)

	t.Run("Match", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/search?q=gardening", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []models.Post
		decodeBody(t, resp, &posts)
		require.Len(t, posts, 1)
		assert.Equal(t, "Gardening tips", posts[0].Title)
	})

	t.Run("NoQueryIsEmptyList", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/search", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []models.Post
		decodeBody(t, resp, &posts)
		assert.Empty(t, posts)
	})
}

func TestGetFeed(t *testing.T) {
	s, db := newTestServer(t)
	alice := createTestUser(t, db, "alice", "alice@example.com")
	bob := createTestUser(t, db, "bob", "bob@example.com")

	require.NoError(t, db.Create(&models.Post{
		Title: "From bob", Body: "Body", AuthorID: bob.ID, CreatedAt: time.Now(),
	}).Error)

	app := fiber.New()
	app.Get("/feed", asUser(alice.ID), s.GetFeed)

	t.Run("EmptyWithoutFollows", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/feed", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []models.Post
		decodeBody(t, resp, &posts)
		assert.Empty(t, posts)
	})

	t.Run("PopulatedAfterFollow", func(t *testing.T) {
		require.NoError(t, db.Create(&models.Follow{AuthorID: alice.ID, FollowedID: bob.ID}).Error)

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/feed", nil))
		require.NoError(t, err)

		var posts []models.Post
		decodeBody(t, resp, &posts)
		require.Len(t, posts, 1)
		assert.Equal(t, "From bob", posts[0].Title)
		assert.Equal(t, "bob", posts[0].Author.Username)
	})
}
