package repositories

import (
	"strings"
	"time"

	"pulsehub/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	Update(post *models.Post) error
	UpdateFromPending(postID uint, updates map[string]interface{}) (bool, error)
	ReplaceTags(post *models.Post, tags []models.Tag) error
	DeleteCascade(postID uint) error
	ListVisible(params models.FeedParams, viewerID uint) ([]models.Post, int64, error)
	ListPendingByCommunity(communityID uint) ([]models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").
		Preload("Community").
		Preload("Tags").
		First(&post, id).Error
	return &post, err
}

func (r *postRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// UpdateFromPending applies a moderation decision with a compare-and-swap on
// the current status. Zero affected rows means another moderator already
// committed a terminal decision; the caller treats that as a conflict.
func (r *postRepository) UpdateFromPending(postID uint, updates map[string]interface{}) (bool, error) {
	res := r.db.Model(&models.Post{}).
		Where("id = ? AND status = ?", postID, models.StatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) ReplaceTags(post *models.Post, tags []models.Tag) error {
	return r.db.Model(post).Association("Tags").Replace(tags)
}

// DeleteCascade removes the post and everything hanging off it in one
// transaction, dependents first, so no dangling references are observable.
func (r *postRepository) DeleteCascade(postID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", postID).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostVersion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Complaint{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, postID).Error
	})
}

func (r *postRepository) ListVisible(params models.FeedParams, viewerID uint) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := r.db.Model(&models.Post{}).
		Preload("Author").
		Preload("Tags").
		Where("posts.status = ?", models.StatusPublished).
		Where("posts.publish_at IS NOT NULL AND posts.publish_at <= ?", time.Now())

	if params.Tag != "" {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name = ?", strings.ToLower(params.Tag))
	}

	if params.Q != "" {
		pattern := "%" + strings.ToLower(params.Q) + "%"
		query = query.Where("LOWER(posts.title) LIKE ? OR LOWER(posts.content) LIKE ?", pattern, pattern)
	}

	if params.CommunityID > 0 {
		query = query.Where("posts.community_id = ?", params.CommunityID)
	}

	if params.AuthorID > 0 {
		query = query.Where("posts.author_id = ?", params.AuthorID)
	}

	if params.Subscriptions && viewerID > 0 {
		query = query.
			Joins("JOIN follows ON follows.following_id = posts.author_id").
			Where("follows.follower_id = ?", viewerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch params.Sort {
	case models.SortPopular:
		query = query.Order("(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) DESC")
	default:
		query = query.Order("posts.created_at DESC")
	}

	offset := (params.Page - 1) * params.Limit
	err := query.Offset(offset).Limit(params.Limit).Find(&posts).Error

	return posts, total, err
}

func (r *postRepository) ListPendingByCommunity(communityID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").
		Preload("Tags").
		Where("community_id = ? AND status = ?", communityID, models.StatusPending).
		Order("created_at desc").
		Find(&posts).Error
	return posts, err
}
