package models

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonDecode(resp *http.Response, dest interface{}) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusForError(NewValidationError("bad")))
	assert.Equal(t, http.StatusNotFound, StatusForError(NewNotFoundError("Post")))
	assert.Equal(t, http.StatusForbidden, StatusForError(NewPermissionError()))
	assert.Equal(t, http.StatusUnauthorized, StatusForError(NewUnauthorizedError("nope")))
	assert.Equal(t, http.StatusInternalServerError, StatusForError(NewInternalError(errors.New("db down"))))
	assert.Equal(t, http.StatusInternalServerError, StatusForError(errors.New("anything else")))
}

func respondWith(t *testing.T, err error) (*http.Response, map[string]interface{}) {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return RespondWithError(c, err)
	})

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, testErr)

	var body map[string]interface{}
	require.NoError(t, jsonDecode(resp, &body))
	return resp, body
}

func TestRespondWithError_Validation(t *testing.T) {
	resp, body := respondWith(t, NewValidationError("first message", "second message"))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, []interface{}{"first message", "second message"}, body["errors"])
}

func TestRespondWithError_InternalHidesCause(t *testing.T) {
	resp, body := respondWith(t, NewInternalError(errors.New("pq: connection refused to 10.0.0.5")))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Please try again later.", body["error"])
	assert.Equal(t, CodeInternal, body["code"])
	for _, v := range body {
		if s, ok := v.(string); ok {
			assert.NotContains(t, s, "connection refused")
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("one", "two")
	assert.Equal(t, "one; two", err.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
}
