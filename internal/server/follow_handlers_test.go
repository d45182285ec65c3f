package server

import (
	"net/http"
	"testing"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowUser(t *testing.T) {
	s, db := newTestServer(t)
	alice := createTestUser(t, db, "alice", "alice@example.com")
	bob := createTestUser(t, db, "bob", "bob@example.com")

	app := fiber.New()
	app.Post("/users/:username/follow", asUser(alice.ID), s.FollowUser)

	t.Run("Success", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users/bob/follow", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var count int64
		db.Model(&models.Follow{}).
			Where("author_id = ? AND followed_id = ?", alice.ID, bob.ID).
			Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("Duplicate", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users/bob/follow", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Errors []string `json:"errors"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, []string{"You are already following this user."}, body.Errors)
	})

	t.Run("Self", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users/alice/follow", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UnknownTarget", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users/nobody/follow", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Errors []string `json:"errors"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, []string{"You cannot follow a user that does not exist."}, body.Errors)
	})
}

func TestUnfollowUser(t *testing.T) {
	s, db := newTestServer(t)
	alice := createTestUser(t, db, "alice", "alice@example.com")
	bob := createTestUser(t, db, "bob", "bob@example.com")

	app := fiber.New()
	app.Delete("/users/:username/follow", asUser(alice.ID), s.UnfollowUser)

	t.Run("NotFollowing", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/users/bob/follow", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Success", func(t *testing.T) {
		require.NoError(t, db.Create(&models.Follow{AuthorID: alice.ID, FollowedID: bob.ID}).Error)

		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/users/bob/follow", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var count int64
		db.Model(&models.Follow{}).Where("author_id = ?", alice.ID).Count(&count)
		assert.Zero(t, count)
	})
}
