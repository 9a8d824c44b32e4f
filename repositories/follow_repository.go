package repositories

import (
	"pulsehub/models"

	"gorm.io/gorm"
)

type FollowRepository interface {
	Get(followerID, followingID uint) (*models.Follow, error)
	Create(follow *models.Follow) error
	Delete(followerID, followingID uint) error
	CountFollowers(followingID uint) (int64, error)
	ListFollowerIDs(followingID uint) ([]uint, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Get(followerID, followingID uint) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error
	return &follow, err
}

func (r *followRepository) Create(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

func (r *followRepository) Delete(followerID, followingID uint) error {
	return r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

func (r *followRepository) CountFollowers(followingID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("following_id = ?", followingID).
		Count(&count).Error
	return count, err
}

func (r *followRepository) ListFollowerIDs(followingID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).
		Where("following_id = ?", followingID).
		Pluck("follower_id", &ids).Error
	return ids, err
}
