// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a blog post. Title and Body are sanitized plain text;
// CreatedAt and AuthorID are immutable after creation.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_date"`
	AuthorID  uint      `gorm:"not null;index" json:"-"`
	// AuthorUser is the raw joined record; it is projected into Author and
	// never serialized.
	AuthorUser *User `gorm:"foreignKey:AuthorID" json:"-"`
	// Author is the public projection attached at read time.
	Author UserSummary `gorm:"-:all" json:"author"`
	// IsVisitorOwner is computed per request and never persisted.
	IsVisitorOwner bool `gorm:"-:all" json:"is_visitor_owner"`
}
