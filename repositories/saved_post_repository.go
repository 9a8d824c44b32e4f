package repositories

import (
	"pulsehub/models"

	"gorm.io/gorm"
)

type SavedPostRepository interface {
	Get(userID, postID uint) (*models.SavedPost, error)
	Create(saved *models.SavedPost) error
	Delete(userID, postID uint) error
	SavedSet(userID uint, postIDs []uint) (map[uint]bool, error)
}

type savedPostRepository struct {
	db *gorm.DB
}

func NewSavedPostRepository(db *gorm.DB) SavedPostRepository {
	return &savedPostRepository{db: db}
}

func (r *savedPostRepository) Get(userID, postID uint) (*models.SavedPost, error) {
	var saved models.SavedPost
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&saved).Error
	return &saved, err
}

func (r *savedPostRepository) Create(saved *models.SavedPost) error {
	return r.db.Create(saved).Error
}

func (r *savedPostRepository) Delete(userID, postID uint) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.SavedPost{}).Error
}

func (r *savedPostRepository) SavedSet(userID uint, postIDs []uint) (map[uint]bool, error) {
	saved := make(map[uint]bool, len(postIDs))
	if len(postIDs) == 0 {
		return saved, nil
	}

	var ids []uint
	err := r.db.Model(&models.SavedPost{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		saved[id] = true
	}
	return saved, nil
}
