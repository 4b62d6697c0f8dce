// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user in the Mingle application.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Bio       string         `json:"bio"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Posts     []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// ProfileCounts carries the aggregate counts attached to a profile response.
// Always computed from relations at request time, never stored.
type ProfileCounts struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// Profile is a user's public profile view: identity fields plus fresh
// aggregate counts and whether the requesting user follows them.
type Profile struct {
	ID        uint          `json:"id"`
	Username  string        `json:"username"`
	Bio       string        `json:"bio"`
	Avatar    string        `json:"avatar"`
	CreatedAt time.Time     `json:"created_at"`
	Counts    ProfileCounts `json:"_count"`
	Following bool          `json:"following"`
}
