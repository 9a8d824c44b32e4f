package repositories

import (
	"pulsehub/models"

	"gorm.io/gorm"
)

type ComplaintRepository interface {
	Create(complaint *models.Complaint) error
	GetByID(id uint) (*models.Complaint, error)
	ListPendingByCommunity(communityID uint) ([]models.Complaint, error)
	UpdateFromPending(id uint, status models.ComplaintStatus) (bool, error)
}

type complaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) Create(complaint *models.Complaint) error {
	return r.db.Create(complaint).Error
}

func (r *complaintRepository) GetByID(id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	err := r.db.Preload("Reporter").First(&complaint, id).Error
	return &complaint, err
}

func (r *complaintRepository) ListPendingByCommunity(communityID uint) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := r.db.Preload("Reporter").
		Where("community_id = ? AND status = ?", communityID, models.ComplaintPending).
		Order("created_at desc").
		Find(&complaints).Error
	return complaints, err
}

// UpdateFromPending applies a decision with a compare-and-swap on the
// current status, the same guard the post moderation write uses.
func (r *complaintRepository) UpdateFromPending(id uint, status models.ComplaintStatus) (bool, error) {
	res := r.db.Model(&models.Complaint{}).
		Where("id = ? AND status = ?", id, models.ComplaintPending).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
