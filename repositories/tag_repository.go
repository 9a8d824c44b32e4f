package repositories

import (
	"strings"

	"pulsehub/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository interface {
	FindOrCreate(name string) (*models.Tag, error)
	GetByName(name string) (*models.Tag, error)
	GetAll() ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// FindOrCreate lower-cases the name and relies on the unique index so that
// concurrent creation of the same tag cannot produce duplicates: the insert
// is ON CONFLICT DO NOTHING, then the winner's row is fetched.
func (r *tagRepository) FindOrCreate(name string) (*models.Tag, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))

	tag := models.Tag{Name: normalized}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
		return nil, err
	}
	if tag.ID != 0 {
		return &tag, nil
	}

	return r.GetByName(normalized)
}

func (r *tagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	return &tag, err
}

func (r *tagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name asc").Find(&tags).Error
	return tags, err
}
