package repositories

import (
	"pulsehub/models"

	"gorm.io/gorm"
)

type PostVersionRepository interface {
	Create(version *models.PostVersion) error
	ListByPost(postID uint) ([]models.PostVersion, error)
}

type postVersionRepository struct {
	db *gorm.DB
}

func NewPostVersionRepository(db *gorm.DB) PostVersionRepository {
	return &postVersionRepository{db: db}
}

func (r *postVersionRepository) Create(version *models.PostVersion) error {
	return r.db.Create(version).Error
}

func (r *postVersionRepository) ListByPost(postID uint) ([]models.PostVersion, error) {
	var versions []models.PostVersion
	err := r.db.Where("post_id = ?", postID).
		Order("created_at desc").
		Find(&versions).Error
	return versions, err
}
