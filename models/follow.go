package models

import (
	"time"
)

type Follow struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	FollowerID  uint      `json:"follower_id" gorm:"not null;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"not null;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
