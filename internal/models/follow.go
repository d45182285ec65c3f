// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Follow is a directed edge meaning "AuthorID follows FollowedID".
// The pair is unique and self-loops are rejected at validation time.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AuthorID   uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"author_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	AuthorUser   *User `gorm:"foreignKey:AuthorID" json:"-"`
	FollowedUser *User `gorm:"foreignKey:FollowedID" json:"-"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
