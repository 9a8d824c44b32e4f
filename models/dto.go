package models

import "time"

// Auth requests are validated explicitly through the helper's validator so
// field errors come back translated, per field, in the envelope.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	// Identifier accepts either the email or the @username.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreatePostRequest struct {
	Title           string          `json:"title" binding:"required,min=1,max=255"`
	Content         string          `json:"content" binding:"required"`
	Tags            []string        `json:"tags"`
	CommunityID     *uint           `json:"community_id"`
	Status          PostStatus      `json:"status"`
	PublicationType PublicationType `json:"publication_type"`
	PublishAt       *time.Time      `json:"publish_at"`
}

type UpdateDraftRequest struct {
	Title           string          `json:"title" binding:"required,min=1,max=255"`
	Content         string          `json:"content" binding:"required"`
	Tags            []string        `json:"tags"`
	PublicationType PublicationType `json:"publication_type"`
	PublishAt       *time.Time      `json:"publish_at"`
	Status          PostStatus      `json:"status"`
}

type ApprovePostRequest struct {
	PublicationMode PublicationMode `json:"publication_mode"`
}

type RejectPostRequest struct {
	Reason string `json:"reason"`
}

// CreateComplaintRequest targets either a post or one of its comments,
// never both.
type CreateComplaintRequest struct {
	PostID    *uint  `json:"post_id"`
	CommentID *uint  `json:"comment_id"`
	Reason    string `json:"reason" binding:"required"`
}

type UpdateComplaintRequest struct {
	Status ComplaintStatus `json:"status" binding:"required"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CreateCommunityRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"required,min=20"`
	Rules       string `json:"rules"`
	Avatar      string `json:"avatar"`
	Background  string `json:"background"`
}

type CommunityListParams struct {
	Q    string `form:"q"`
	Sort string `form:"sort,default=newest"`
}

type MarkReadRequest struct {
	NotificationIDs []uint `json:"notification_ids" binding:"required"`
}

const (
	SortNewest  = "newest"
	SortPopular = "popular"
	SortShuffle = "shuffle"
)

type FeedParams struct {
	Tag           string `form:"tag"`
	Q             string `form:"q"`
	CommunityID   uint   `form:"community_id"`
	AuthorID      uint   `form:"author_id"`
	Subscriptions bool   `form:"subscriptions"`
	Sort          string `form:"sort"`
	Page          int    `form:"page,default=1"`
	Limit         int    `form:"limit,default=20"`
}

type AuthorSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

type CommentView struct {
	ID        uint          `json:"id"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Author    AuthorSummary `json:"author"`
}

// PostSummary is the feed row shape. IsLiked and IsSaved are pointers so the
// fields are omitted entirely for anonymous viewers instead of defaulting to
// false.
type PostSummary struct {
	ID           uint          `json:"id"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	CreatedAt    time.Time     `json:"created_at"`
	Author       AuthorSummary `json:"author"`
	CommunityID  *uint         `json:"community_id,omitempty"`
	Tags         []string      `json:"tags"`
	LikeCount    int64         `json:"like_count"`
	CommentCount int64         `json:"comment_count"`
	IsLiked      *bool         `json:"is_liked,omitempty"`
	IsSaved      *bool         `json:"is_saved,omitempty"`
}

type PostDetail struct {
	PostSummary
	Status          PostStatus      `json:"status"`
	PublicationMode PublicationMode `json:"publication_mode"`
	PublicationType PublicationType `json:"publication_type"`
	PublishAt       *time.Time      `json:"publish_at"`
	Comments        []CommentView   `json:"comments"`
	Versions        []PostVersion   `json:"versions,omitempty"`
}

type PendingPostView struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	AuthorID    uint      `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	CommunityID uint      `json:"community_id"`
	CreatedAt   time.Time `json:"created_at"`
	Tags        []string  `json:"tags"`
}

type CommunitySummary struct {
	Community
	PostsCount   int64    `json:"posts_count"`
	MembersCount int64    `json:"members_count"`
	Tags         []string `json:"tags"`
}

type CommunityDetail struct {
	Community
	PostsCount           int64 `json:"posts_count"`
	MembersCount         int64 `json:"members_count"`
	IsFollow             *bool `json:"is_follow,omitempty"`
	NotificationsEnabled *bool `json:"notifications_enabled,omitempty"`
}

type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

type FollowResult struct {
	Followed      bool  `json:"followed"`
	FollowerCount int64 `json:"follower_count"`
}

type SaveResult struct {
	Saved bool `json:"saved"`
}
