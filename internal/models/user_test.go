package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURL(t *testing.T) {
	// md5("user@example.com")
	want := "https://gravatar.com/avatar/b58996c504c5638798eb6b511e6f49af?s=128"

	assert.Equal(t, want, GravatarURL("user@example.com"))
	// Case and surrounding whitespace never change the hash.
	assert.Equal(t, want, GravatarURL("  User@Example.COM "))
}

func TestUserSummary(t *testing.T) {
	u := User{Username: "casey", Email: "casey@example.com"}

	s := u.Summary()
	assert.Equal(t, "casey", s.Username)
	assert.Equal(t, GravatarURL("casey@example.com"), s.Avatar)
}

func TestResolveAvatar(t *testing.T) {
	u := User{Username: "casey", Email: "casey@example.com"}
	assert.Empty(t, u.Avatar)

	u.ResolveAvatar()
	assert.Equal(t, GravatarURL("casey@example.com"), u.Avatar)
}
