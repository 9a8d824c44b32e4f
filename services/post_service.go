package services

import (
	"errors"
	"strings"
	"time"

	"pulsehub/models"
	"pulsehub/repositories"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// ugcPolicy strips dangerous markup from user-supplied content before it is
// stored. Policies are safe for concurrent use.
var ugcPolicy = bluemonday.UGCPolicy()

// PostService owns the post state machine: DRAFT -> PENDING -> {PUBLISHED,
// REJECTED}, with DRAFT -> PUBLISHED directly for personal posts. PUBLISHED
// and REJECTED are terminal; the moderation write is a compare-and-swap so
// that of two concurrent decisions exactly one commits.
type PostService interface {
	Create(authorID uint, req models.CreatePostRequest) (*models.Post, error)
	EditDraft(postID, editorID uint, req models.UpdateDraftRequest) (*models.Post, error)
	Approve(postID, moderatorID uint, req models.ApprovePostRequest) (*models.Post, error)
	Reject(postID, moderatorID uint, reason string) (*models.Post, error)
	Delete(postID, requesterID uint) error
	Get(postID, viewerID uint) (*models.PostDetail, error)
	PendingPosts(communityID, moderatorID uint) ([]models.PendingPostView, error)
}

type postService struct {
	postRepo      repositories.PostRepository
	versionRepo   repositories.PostVersionRepository
	tagRepo       repositories.TagRepository
	communityRepo repositories.CommunityRepository
	userRepo      repositories.UserRepository
	likeRepo      repositories.LikeRepository
	commentRepo   repositories.CommentRepository
	savedRepo     repositories.SavedPostRepository
	membership    MembershipService
	notifications NotificationService
}

func NewPostService(
	postRepo repositories.PostRepository,
	versionRepo repositories.PostVersionRepository,
	tagRepo repositories.TagRepository,
	communityRepo repositories.CommunityRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	savedRepo repositories.SavedPostRepository,
	membership MembershipService,
	notifications NotificationService,
) PostService {
	return &postService{
		postRepo:      postRepo,
		versionRepo:   versionRepo,
		tagRepo:       tagRepo,
		communityRepo: communityRepo,
		userRepo:      userRepo,
		likeRepo:      likeRepo,
		commentRepo:   commentRepo,
		savedRepo:     savedRepo,
		membership:    membership,
		notifications: notifications,
	}
}

func (s *postService) Create(authorID uint, req models.CreatePostRequest) (*models.Post, error) {
	publicationType, err := resolvePublicationType(req.PublicationType)
	if err != nil {
		return nil, err
	}

	tags, err := s.processTags(req.Tags)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:        authorID,
		Title:           req.Title,
		Content:         ugcPolicy.Sanitize(req.Content),
		PublicationType: publicationType,
		Tags:            tags,
	}

	if req.CommunityID != nil {
		if _, err := s.communityRepo.GetByID(*req.CommunityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorNotFound{Message: "community not found"}
			}
			return nil, models.ErrorInternalServer{Message: err.Error()}
		}

		role, err := s.membership.RoleOf(*req.CommunityID, authorID)
		if err != nil {
			return nil, err
		}
		if role == models.RoleNone {
			return nil, models.ErrorForbidden{Message: "you are not a member of this community"}
		}

		// Community submissions always enter moderation; a client-supplied
		// status is ignored.
		post.CommunityID = req.CommunityID
		post.PublicationMode = models.ModeCommunity
		post.Status = models.StatusPending
	} else {
		status := req.Status
		if status == "" {
			status = models.StatusDraft
		}
		if status != models.StatusDraft && status != models.StatusPublished {
			return nil, models.ErrorBadRequest{Message: "status must be DRAFT or PUBLISHED"}
		}

		post.PublicationMode = models.ModeUser
		post.Status = status
		post.PublishAt = req.PublishAt
		if status == models.StatusPublished && post.PublishAt == nil {
			now := time.Now()
			post.PublishAt = &now
		}
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	created, err := s.postRepo.GetByID(post.ID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	if created.Live(time.Now()) {
		s.notifications.NotifyFollowersOfNewPost(&created.Author, created)
	}

	return created, nil
}

func (s *postService) EditDraft(postID, editorID uint, req models.UpdateDraftRequest) (*models.Post, error) {
	post, err := s.getPost(postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != editorID {
		return nil, models.ErrorForbidden{Message: "only the author may edit this post"}
	}
	if post.Status != models.StatusDraft {
		return nil, models.ErrorBadRequest{Message: "only drafts can be edited"}
	}

	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}
	if status != models.StatusDraft && status != models.StatusPublished {
		return nil, models.ErrorBadRequest{Message: "status must be DRAFT or PUBLISHED"}
	}

	publicationType, err := resolvePublicationType(req.PublicationType)
	if err != nil {
		return nil, err
	}

	tags, err := s.processTags(req.Tags)
	if err != nil {
		return nil, err
	}

	// Snapshot the pre-edit state before anything is touched.
	version := &models.PostVersion{
		PostID:   post.ID,
		Title:    post.Title,
		Content:  post.Content,
		EditorID: editorID,
	}
	if err := s.versionRepo.Create(version); err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	wasLive := post.Live(time.Now())

	post.Title = req.Title
	post.Content = ugcPolicy.Sanitize(req.Content)
	post.PublicationType = publicationType
	post.Status = status
	if req.PublishAt != nil {
		post.PublishAt = req.PublishAt
	}
	if status == models.StatusPublished && post.PublishAt == nil {
		now := time.Now()
		post.PublishAt = &now
	}

	if err := s.postRepo.ReplaceTags(post, tags); err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	if err := s.postRepo.Update(post); err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	updated, err := s.postRepo.GetByID(post.ID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	if !wasLive && updated.Live(time.Now()) {
		s.notifications.NotifyFollowersOfNewPost(&updated.Author, updated)
	}

	return updated, nil
}

func (s *postService) Approve(postID, moderatorID uint, req models.ApprovePostRequest) (*models.Post, error) {
	post, err := s.getPost(postID)
	if err != nil {
		return nil, err
	}
	if post.CommunityID == nil {
		return nil, models.ErrorForbidden{Message: "personal posts are not subject to community moderation"}
	}
	if err := s.membership.RequireModerator(*post.CommunityID, moderatorID); err != nil {
		return nil, err
	}

	mode := req.PublicationMode
	if mode == "" {
		mode = models.ModeCommunity
	}
	if mode != models.ModeUser && mode != models.ModeCommunity {
		return nil, models.ErrorBadRequest{Message: "publication_mode must be USER or COMMUNITY"}
	}

	now := time.Now()
	ok, err := s.postRepo.UpdateFromPending(postID, map[string]interface{}{
		"status":           models.StatusPublished,
		"publication_mode": mode,
		"publish_at":       now,
	})
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	if !ok {
		return nil, models.ErrorConflict{Message: "post already has a terminal decision"}
	}

	updated, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	if moderator, err := s.userRepo.GetByID(moderatorID); err == nil {
		s.notifications.NotifyPostPublished(moderator, updated)
	}
	s.notifications.NotifyFollowersOfNewPost(&updated.Author, updated)

	return updated, nil
}

func (s *postService) Reject(postID, moderatorID uint, reason string) (*models.Post, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, models.ErrorBadRequest{Message: "a rejection reason is required"}
	}

	post, err := s.getPost(postID)
	if err != nil {
		return nil, err
	}
	if post.CommunityID == nil {
		return nil, models.ErrorForbidden{Message: "personal posts are not subject to community moderation"}
	}
	if err := s.membership.RequireModerator(*post.CommunityID, moderatorID); err != nil {
		return nil, err
	}

	ok, err := s.postRepo.UpdateFromPending(postID, map[string]interface{}{
		"status": models.StatusRejected,
	})
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	if !ok {
		return nil, models.ErrorConflict{Message: "post already has a terminal decision"}
	}

	updated, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	if moderator, err := s.userRepo.GetByID(moderatorID); err == nil {
		s.notifications.NotifyPostRejected(moderator, updated, reason)
	}

	return updated, nil
}

func (s *postService) Delete(postID, requesterID uint) error {
	post, err := s.getPost(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID {
		return models.ErrorForbidden{Message: "only the author may delete this post"}
	}

	if err := s.postRepo.DeleteCascade(postID); err != nil {
		return models.ErrorInternalServer{Message: err.Error()}
	}
	return nil
}

func (s *postService) Get(postID, viewerID uint) (*models.PostDetail, error) {
	post, err := s.getPost(postID)
	if err != nil {
		return nil, err
	}

	visible, err := s.visibleTo(post, viewerID)
	if err != nil {
		return nil, err
	}
	if !visible {
		// Hidden posts are indistinguishable from absent ones.
		return nil, models.ErrorNotFound{Message: "post not found"}
	}

	likeCount, err := s.likeRepo.CountByPost(post.ID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	comments, err := s.commentRepo.ListByPost(post.ID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	detail := &models.PostDetail{
		PostSummary: models.PostSummary{
			ID:        post.ID,
			Title:     post.Title,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
			Author: models.AuthorSummary{
				ID:       post.Author.ID,
				Username: post.Author.Username,
				Name:     post.Author.Name,
				Avatar:   post.Author.Avatar,
			},
			CommunityID:  post.CommunityID,
			Tags:         tagNames(post.Tags),
			LikeCount:    likeCount,
			CommentCount: int64(len(comments)),
		},
		Status:          post.Status,
		PublicationMode: post.PublicationMode,
		PublicationType: post.PublicationType,
		PublishAt:       post.PublishAt,
		Comments:        commentViews(comments),
	}

	if viewerID > 0 {
		liked, err := s.likeRepo.LikedSet(viewerID, []uint{post.ID})
		if err != nil {
			return nil, models.ErrorInternalServer{Message: err.Error()}
		}
		saved, err := s.savedRepo.SavedSet(viewerID, []uint{post.ID})
		if err != nil {
			return nil, models.ErrorInternalServer{Message: err.Error()}
		}
		isLiked := liked[post.ID]
		isSaved := saved[post.ID]
		detail.IsLiked = &isLiked
		detail.IsSaved = &isSaved
	}

	if viewerID == post.AuthorID {
		versions, err := s.versionRepo.ListByPost(post.ID)
		if err != nil {
			return nil, models.ErrorInternalServer{Message: err.Error()}
		}
		detail.Versions = versions
	}

	return detail, nil
}

func (s *postService) PendingPosts(communityID, moderatorID uint) ([]models.PendingPostView, error) {
	if _, err := s.communityRepo.GetByID(communityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "community not found"}
		}
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	if err := s.membership.RequireModerator(communityID, moderatorID); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListPendingByCommunity(communityID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	views := make([]models.PendingPostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, models.PendingPostView{
			ID:          post.ID,
			Title:       post.Title,
			Content:     post.Content,
			AuthorID:    post.AuthorID,
			AuthorName:  displayName(&post.Author),
			CommunityID: *post.CommunityID,
			CreatedAt:   post.CreatedAt,
			Tags:        tagNames(post.Tags),
		})
	}
	return views, nil
}

func (s *postService) getPost(postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "post not found"}
		}
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	return post, nil
}

// visibleTo applies the visibility rules: live posts are public, drafts are
// author-only, and non-terminal or rejected community posts are limited to
// the author and the community's moderators.
func (s *postService) visibleTo(post *models.Post, viewerID uint) (bool, error) {
	if post.Live(time.Now()) {
		return true, nil
	}
	if viewerID == 0 {
		return false, nil
	}
	if post.AuthorID == viewerID {
		return true, nil
	}

	if post.CommunityID != nil && post.Status != models.StatusDraft {
		role, err := s.membership.RoleOf(*post.CommunityID, viewerID)
		if err != nil {
			return false, err
		}
		return role.CanModerate(), nil
	}

	return false, nil
}

// processTags lower-cases, de-duplicates, and find-or-creates the given tag
// names.
func (s *postService) processTags(names []string) ([]models.Tag, error) {
	var tags []models.Tag
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true

		tag, err := s.tagRepo.FindOrCreate(normalized)
		if err != nil {
			return nil, models.ErrorInternalServer{Message: err.Error()}
		}
		tags = append(tags, *tag)
	}

	return tags, nil
}

func resolvePublicationType(t models.PublicationType) (models.PublicationType, error) {
	switch t {
	case "":
		return models.TypeArticle, nil
	case models.TypeArticle, models.TypeNews, models.TypeReview:
		return t, nil
	}
	return "", models.ErrorBadRequest{Message: "publication_type must be ARTICLE, NEWS, or REVIEW"}
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func commentViews(comments []models.Comment) []models.CommentView {
	views := make([]models.CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, models.CommentView{
			ID:        comment.ID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
			Author: models.AuthorSummary{
				ID:       comment.User.ID,
				Username: comment.User.Username,
				Name:     comment.User.Name,
				Avatar:   comment.User.Avatar,
			},
		})
	}
	return views
}
