package models

import (
	"time"
)

// PostVersion is an immutable snapshot of a draft's title and content taken
// before every edit. Append-only; rows are removed only when the owning post
// is deleted.
type PostVersion struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text"`
	EditorID  uint      `json:"editor_id" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
