package services

import (
	"fmt"
	"log"

	"pulsehub/models"
	"pulsehub/repositories"
)

// NotificationService persists notification records for domain events. The
// Notify methods are best-effort: the triggering action has already
// committed, so failures are logged and never surfaced to its caller.
type NotificationService interface {
	NotifyLiked(actor *models.User, post *models.Post)
	NotifyCommented(actor *models.User, post *models.Post)
	NotifyFollowed(actor *models.User, recipientID uint)
	NotifyPostPublished(moderator *models.User, post *models.Post)
	NotifyPostRejected(moderator *models.User, post *models.Post, reason string)
	NotifyFollowersOfNewPost(author *models.User, post *models.Post)

	List(recipientID uint) ([]models.Notification, error)
	MarkRead(recipientID uint, ids []uint) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	followRepo       repositories.FollowRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, followRepo repositories.FollowRepository) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		followRepo:       followRepo,
	}
}

func (s *notificationService) NotifyLiked(actor *models.User, post *models.Post) {
	if actor.ID == post.AuthorID {
		return
	}
	s.persist(&models.Notification{
		Type:        models.NotificationLike,
		SenderID:    actor.ID,
		SenderName:  actor.Username,
		RecipientID: post.AuthorID,
		PostID:      &post.ID,
		Message:     fmt.Sprintf("%s liked your post.", displayName(actor)),
	})
}

func (s *notificationService) NotifyCommented(actor *models.User, post *models.Post) {
	if actor.ID == post.AuthorID {
		return
	}
	s.persist(&models.Notification{
		Type:        models.NotificationComment,
		SenderID:    actor.ID,
		SenderName:  actor.Username,
		RecipientID: post.AuthorID,
		PostID:      &post.ID,
		Message:     fmt.Sprintf("%s commented on your post.", displayName(actor)),
	})
}

func (s *notificationService) NotifyFollowed(actor *models.User, recipientID uint) {
	if actor.ID == recipientID {
		return
	}
	s.persist(&models.Notification{
		Type:        models.NotificationFollow,
		SenderID:    actor.ID,
		SenderName:  actor.Username,
		RecipientID: recipientID,
		Message:     fmt.Sprintf("%s started following you.", displayName(actor)),
	})
}

func (s *notificationService) NotifyPostPublished(moderator *models.User, post *models.Post) {
	s.persist(&models.Notification{
		Type:        models.NotificationPostPublished,
		SenderID:    moderator.ID,
		SenderName:  moderator.Username,
		RecipientID: post.AuthorID,
		PostID:      &post.ID,
		Message:     fmt.Sprintf("Your post %q has been published.", post.Title),
	})
}

func (s *notificationService) NotifyPostRejected(moderator *models.User, post *models.Post, reason string) {
	s.persist(&models.Notification{
		Type:        models.NotificationPostRejected,
		SenderID:    moderator.ID,
		SenderName:  moderator.Username,
		RecipientID: post.AuthorID,
		PostID:      &post.ID,
		Message:     fmt.Sprintf("Your post %q was rejected. Reason: %s", post.Title, reason),
	})
}

// NotifyFollowersOfNewPost writes one notification row per follower of the
// author at publication time. A failed insert for one follower does not stop
// delivery to the rest.
func (s *notificationService) NotifyFollowersOfNewPost(author *models.User, post *models.Post) {
	followerIDs, err := s.followRepo.ListFollowerIDs(author.ID)
	if err != nil {
		log.Printf("notification fan-out: listing followers of user %d: %v", author.ID, err)
		return
	}

	for _, followerID := range followerIDs {
		s.persist(&models.Notification{
			Type:        models.NotificationNewPost,
			SenderID:    author.ID,
			SenderName:  author.Username,
			RecipientID: followerID,
			PostID:      &post.ID,
			Message:     fmt.Sprintf("New post from %s.", displayName(author)),
		})
	}
}

func (s *notificationService) List(recipientID uint) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByRecipient(recipientID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: err.Error()}
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(recipientID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, models.ErrorBadRequest{Message: "notification_ids must not be empty"}
	}
	updated, err := s.notificationRepo.MarkRead(ids, recipientID)
	if err != nil {
		return 0, models.ErrorInternalServer{Message: err.Error()}
	}
	return updated, nil
}

func (s *notificationService) persist(n *models.Notification) {
	if err := s.notificationRepo.Create(n); err != nil {
		log.Printf("notification fan-out: persisting %s for recipient %d: %v", n.Type, n.RecipientID, err)
	}
}

func displayName(u *models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
