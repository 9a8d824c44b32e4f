package services

import (
	"errors"

	"pulsehub/models"
	"pulsehub/repositories"

	"gorm.io/gorm"
)

// EngagementService covers the per-post reactions: likes, comments, saves,
// and follow edges between users. Toggles are idempotent pairs; repeating
// one returns the entity to its prior state.
type EngagementService interface {
	ToggleLike(postID, userID uint) (*models.LikeResult, error)
	AddComment(postID, userID uint, content string) (*models.CommentView, error)
	DeleteComment(commentID, userID uint) error
	ToggleSave(postID, userID uint) (*models.SaveResult, error)
	ToggleFollow(followingID, followerID uint) (*models.FollowResult, error)
}

type engagementService struct {
	postRepo      repositories.PostRepository
	likeRepo      repositories.LikeRepository
	commentRepo   repositories.CommentRepository
	savedRepo     repositories.SavedPostRepository
	followRepo    repositories.FollowRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
}

func NewEngagementService(
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	savedRepo repositories.SavedPostRepository,
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) EngagementService {
	return &engagementService{
		postRepo:      postRepo,
		likeRepo:      likeRepo,
		commentRepo:   commentRepo,
		savedRepo:     savedRepo,
		followRepo:    followRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *engagementService) ToggleLike(postID, userID uint) (*models.LikeResult, error) {
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}

	_, err = s.likeRepo.Get(postID, userID)
	if err == nil {
		if err := s.likeRepo.Delete(postID, userID); err != nil {
			return nil, models.ErrorInternalServer{Message: err.Error()}
		}
		count, err := s.likeRepo.CountByPost(postID)
		if err != nil {
			return nil, models.ErrorInternalServer{Message: err.Error()}
		}
		return &models.LikeResult{Liked: false, LikeCount: count}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	if err := s.likeRepo.Create(&models.Like{PostID: postID, UserID: userID}); err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	if actor, err := s.userRepo.GetByID(userID); err == nil {
		s.notifications.NotifyLiked(actor, post)
	}

	count, err := s.likeRepo.CountByPost(postID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	return &models.LikeResult{Liked: true, LikeCount: count}, nil
}

func (s *engagementService) AddComment(postID, userID uint, content string) (*models.CommentView, error) {
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: ugcPolicy.Sanitize(content),
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	actor, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	s.notifications.NotifyCommented(actor, post)

	return &models.CommentView{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		Author: models.AuthorSummary{
			ID:       actor.ID,
			Username: actor.Username,
			Name:     actor.Name,
			Avatar:   actor.Avatar,
		},
	}, nil
}

// DeleteComment is allowed to the comment's author and to the author of the
// commented post.
func (s *engagementService) DeleteComment(commentID, userID uint) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "comment not found"}
		}
		return models.ErrorInternalServer{Message: err.Error()}
	}

	post, err := s.findPost(comment.PostID)
	if err != nil {
		return err
	}

	if comment.UserID != userID && post.AuthorID != userID {
		return models.ErrorForbidden{Message: "you may not delete this comment"}
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return models.ErrorInternalServer{Message: err.Error()}
	}
	return nil
}

func (s *engagementService) ToggleSave(postID, userID uint) (*models.SaveResult, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}

	_, err := s.savedRepo.Get(userID, postID)
	if err == nil {
		if err := s.savedRepo.Delete(userID, postID); err != nil {
			return nil, models.ErrorInternalServer{Message: err.Error()}
		}
		return &models.SaveResult{Saved: false}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	if err := s.savedRepo.Create(&models.SavedPost{UserID: userID, PostID: postID}); err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	return &models.SaveResult{Saved: true}, nil
}

func (s *engagementService) ToggleFollow(followingID, followerID uint) (*models.FollowResult, error) {
	if followerID == followingID {
		return nil, models.ErrorBadRequest{Message: "you cannot follow yourself"}
	}

	if _, err := s.userRepo.GetByID(followingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	_, err := s.followRepo.Get(followerID, followingID)
	if err == nil {
		if err := s.followRepo.Delete(followerID, followingID); err != nil {
			return nil, models.ErrorInternalServer{Message: err.Error()}
		}
		count, err := s.followRepo.CountFollowers(followingID)
		if err != nil {
			return nil, models.ErrorInternalServer{Message: err.Error()}
		}
		return &models.FollowResult{Followed: false, FollowerCount: count}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	if err := s.followRepo.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID}); err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}

	if actor, err := s.userRepo.GetByID(followerID); err == nil {
		s.notifications.NotifyFollowed(actor, followingID)
	}

	count, err := s.followRepo.CountFollowers(followingID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	return &models.FollowResult{Followed: true, FollowerCount: count}, nil
}

func (s *engagementService) findPost(postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "post not found"}
		}
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	return post, nil
}
