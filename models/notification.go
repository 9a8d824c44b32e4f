package models

import (
	"time"
)

type NotificationType string

const (
	NotificationLike          NotificationType = "like"
	NotificationComment       NotificationType = "comment"
	NotificationFollow        NotificationType = "follow"
	NotificationPostPublished NotificationType = "post_published"
	NotificationPostRejected  NotificationType = "post_rejected"
	NotificationNewPost       NotificationType = "new_post"
)

// Notification rows are write-once except for IsRead, which the recipient
// flips. SenderName is captured at creation time so historical entries stay
// stable if the sender later renames.
type Notification struct {
	ID          uint             `json:"id" gorm:"primarykey"`
	Type        NotificationType `json:"type" gorm:"not null"`
	SenderID    uint             `json:"sender_id" gorm:"not null"`
	SenderName  string           `json:"sender_name" gorm:"not null"`
	RecipientID uint             `json:"recipient_id" gorm:"not null;index"`
	PostID      *uint            `json:"post_id"`
	Message     string           `json:"message" gorm:"not null"`
	IsRead      bool             `json:"is_read" gorm:"not null;default:false"`
	CreatedAt   time.Time        `json:"created_at"`
}
