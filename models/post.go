package models

import (
	"time"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "DRAFT"
	StatusPending   PostStatus = "PENDING"
	StatusPublished PostStatus = "PUBLISHED"
	StatusRejected  PostStatus = "REJECTED"
)

type PublicationMode string

const (
	ModeUser      PublicationMode = "USER"
	ModeCommunity PublicationMode = "COMMUNITY"
)

type PublicationType string

const (
	TypeArticle PublicationType = "ARTICLE"
	TypeNews    PublicationType = "NEWS"
	TypeReview  PublicationType = "REVIEW"
)

type Post struct {
	ID              uint            `json:"id" gorm:"primarykey"`
	AuthorID        uint            `json:"author_id" gorm:"not null;index"`
	Author          User            `json:"author" gorm:"foreignKey:AuthorID"`
	CommunityID     *uint           `json:"community_id" gorm:"index"`
	Community       *Community      `json:"community,omitempty" gorm:"foreignKey:CommunityID"`
	Title           string          `json:"title" gorm:"not null"`
	Content         string          `json:"content" gorm:"type:text"`
	Status          PostStatus      `json:"status" gorm:"not null;default:'DRAFT';index"`
	PublicationMode PublicationMode `json:"publication_mode" gorm:"not null;default:'USER'"`
	PublicationType PublicationType `json:"publication_type" gorm:"not null;default:'ARTICLE'"`
	PublishAt       *time.Time      `json:"publish_at"`
	Tags            []Tag           `json:"tags" gorm:"many2many:post_tags;"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Live reports whether the post is externally visible: published and past
// its scheduled publication time.
func (p *Post) Live(now time.Time) bool {
	return p.Status == StatusPublished && p.PublishAt != nil && !p.PublishAt.After(now)
}
