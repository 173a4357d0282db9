// Package models defines the persistence and API types for the application.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tool identifiers stored in Creation.Type.
const (
	ToolArticle           = "article"
	ToolBlogTitle         = "blog-title"
	ToolImage             = "image"
	ToolBackgroundRemoval = "background-removal"
	ToolObjectRemoval     = "object-removal"
	ToolResumeReview      = "resume-review"
)

// Creation is a persisted generation result. Text tools store the generated
// text in Content; image tools store the public URL of the stored image.
type Creation struct {
	ID        string                      `gorm:"primaryKey;size:36" json:"id"`
	UserID    string                      `gorm:"size:64;not null;index" json:"user_id"`
	Prompt    string                      `gorm:"type:text;not null" json:"prompt"`
	Content   string                      `gorm:"type:text;not null" json:"content"`
	Type      string                      `gorm:"size:32;not null" json:"type"`
	Publish   bool                        `gorm:"not null;index" json:"publish"`
	Likes     datatypes.JSONSlice[string] `json:"likes"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when one is not set.
func (c *Creation) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// LikedBy reports whether userID is in the likes list.
func (c *Creation) LikedBy(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
