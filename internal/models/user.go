// Package models contains data structures for the application's domain models.
package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// User represents a registered account. Usernames are stored lowercase;
// Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"-"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	// Avatar is derived from the email at read time and never persisted.
	Avatar string `gorm:"-:all" json:"avatar"`
}

// UserSummary is the public projection of a user attached to posts and
// follower/following listings.
type UserSummary struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// GravatarURL returns the deterministic avatar URL for an email address.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://gravatar.com/avatar/%s?s=128", hex.EncodeToString(sum[:]))
}

// ResolveAvatar fills the derived Avatar field.
func (u *User) ResolveAvatar() {
	u.Avatar = GravatarURL(u.Email)
}

// Summary returns the public projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{Username: u.Username, Avatar: GravatarURL(u.Email)}
}
