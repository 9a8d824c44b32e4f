package repositories

import (
	"strings"

	"pulsehub/models"

	"gorm.io/gorm"
)

type CommunityRepository interface {
	CreateWithAdmin(community *models.Community, ownerID uint) error
	GetByID(id uint) (*models.Community, error)
	List(params models.CommunityListParams) ([]models.Community, error)
	GetMember(communityID, userID uint) (*models.CommunityMember, error)
	CreateMember(member *models.CommunityMember) error
	DeleteMember(communityID, userID uint) error
	UpdateMember(member *models.CommunityMember) error
	CountMembers(communityID uint) (int64, error)
	CountPosts(communityID uint) (int64, error)
	AggregateTagNames(communityID uint) ([]string, error)
}

type communityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

// CreateWithAdmin creates the community and seeds its owner as an ADMIN
// member in the same transaction.
func (r *communityRepository) CreateWithAdmin(community *models.Community, ownerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(community).Error; err != nil {
			return err
		}
		member := models.CommunityMember{
			CommunityID: community.ID,
			UserID:      ownerID,
			Role:        models.RoleAdmin,
		}
		return tx.Create(&member).Error
	})
}

func (r *communityRepository) GetByID(id uint) (*models.Community, error) {
	var community models.Community
	err := r.db.Preload("Owner").
		Preload("Members.User").
		First(&community, id).Error
	return &community, err
}

func (r *communityRepository) List(params models.CommunityListParams) ([]models.Community, error) {
	var communities []models.Community

	query := r.db.Model(&models.Community{}).Preload("Owner")

	if params.Q != "" {
		pattern := "%" + strings.ToLower(params.Q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	switch params.Sort {
	case "oldest":
		query = query.Order("created_at asc")
	case "alphabetical":
		query = query.Order("name asc")
	case "popularity":
		query = query.Order("(SELECT COUNT(*) FROM community_members WHERE community_members.community_id = communities.id) DESC")
	default:
		query = query.Order("created_at desc")
	}

	err := query.Find(&communities).Error
	return communities, err
}

func (r *communityRepository) GetMember(communityID, userID uint) (*models.CommunityMember, error) {
	var member models.CommunityMember
	err := r.db.Where("community_id = ? AND user_id = ?", communityID, userID).
		First(&member).Error
	return &member, err
}

func (r *communityRepository) CreateMember(member *models.CommunityMember) error {
	return r.db.Create(member).Error
}

func (r *communityRepository) DeleteMember(communityID, userID uint) error {
	return r.db.Where("community_id = ? AND user_id = ?", communityID, userID).
		Delete(&models.CommunityMember{}).Error
}

func (r *communityRepository) UpdateMember(member *models.CommunityMember) error {
	return r.db.Save(member).Error
}

func (r *communityRepository) CountMembers(communityID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommunityMember{}).
		Where("community_id = ?", communityID).
		Count(&count).Error
	return count, err
}

func (r *communityRepository) CountPosts(communityID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).
		Where("community_id = ? AND status = ?", communityID, models.StatusPublished).
		Count(&count).Error
	return count, err
}

// AggregateTagNames returns the distinct tag names used by the community's
// published posts.
func (r *communityRepository) AggregateTagNames(communityID uint) ([]string, error) {
	var names []string
	err := r.db.Model(&models.Tag{}).
		Distinct("tags.name").
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Joins("JOIN posts ON posts.id = post_tags.post_id").
		Where("posts.community_id = ? AND posts.status = ?", communityID, models.StatusPublished).
		Order("tags.name asc").
		Pluck("tags.name", &names).Error
	return names, err
}
