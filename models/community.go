package models

import (
	"time"
)

type CommunityRole string

const (
	RoleNone      CommunityRole = ""
	RoleMember    CommunityRole = "MEMBER"
	RoleModerator CommunityRole = "MODERATOR"
	RoleAdmin     CommunityRole = "ADMIN"
)

type Community struct {
	ID          uint              `json:"id" gorm:"primarykey"`
	Name        string            `json:"name" gorm:"not null"`
	Description string            `json:"description" gorm:"type:text"`
	Rules       string            `json:"rules" gorm:"type:text"`
	Avatar      string            `json:"avatar"`
	Background  string            `json:"background"`
	OwnerID     uint              `json:"owner_id" gorm:"not null"`
	Owner       User              `json:"owner" gorm:"foreignKey:OwnerID"`
	Members     []CommunityMember `json:"members,omitempty" gorm:"foreignKey:CommunityID"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type CommunityMember struct {
	ID                   uint          `json:"id" gorm:"primarykey"`
	CommunityID          uint          `json:"community_id" gorm:"not null;uniqueIndex:idx_community_user"`
	UserID               uint          `json:"user_id" gorm:"not null;uniqueIndex:idx_community_user"`
	User                 User          `json:"user" gorm:"foreignKey:UserID"`
	Role                 CommunityRole `json:"role" gorm:"not null;default:'MEMBER'"`
	NotificationsEnabled bool          `json:"notifications_enabled" gorm:"not null;default:false"`
	CreatedAt            time.Time     `json:"created_at"`
}

// CanModerate reports whether the role may decide pending posts. The switch
// is exhaustive over the closed role set.
func (r CommunityRole) CanModerate() bool {
	switch r {
	case RoleModerator, RoleAdmin:
		return true
	case RoleNone, RoleMember:
		return false
	}
	return false
}
