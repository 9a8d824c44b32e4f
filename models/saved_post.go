package models

import (
	"time"
)

type SavedPost struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_post_save"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_user_post_save"`
	CreatedAt time.Time `json:"created_at"`
}
