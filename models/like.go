package models

import (
	"time"
)

type Like struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_post_user_like"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}
