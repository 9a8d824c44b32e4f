package models

import (
	"time"
)

type ComplaintStatus string

const (
	ComplaintPending   ComplaintStatus = "PENDING"
	ComplaintResolved  ComplaintStatus = "RESOLVED"
	ComplaintDismissed ComplaintStatus = "DISMISSED"
)

// Complaint is a report filed against community content. PostID always
// points at the containing post; CommentID is set when the target is a
// comment on it. PENDING is the only non-terminal status.
type Complaint struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	ReporterID  uint            `json:"reporter_id" gorm:"not null"`
	Reporter    User            `json:"reporter" gorm:"foreignKey:ReporterID"`
	PostID      uint            `json:"post_id" gorm:"not null;index"`
	CommentID   *uint           `json:"comment_id,omitempty"`
	CommunityID uint            `json:"community_id" gorm:"not null;index"`
	Reason      string          `json:"reason" gorm:"type:text;not null"`
	Status      ComplaintStatus `json:"status" gorm:"not null;default:'PENDING'"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
