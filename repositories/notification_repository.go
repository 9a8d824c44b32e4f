package repositories

import (
	"pulsehub/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	ListByRecipient(recipientID uint) ([]models.Notification, error)
	MarkRead(ids []uint, recipientID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) ListByRecipient(recipientID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at desc").
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flips is_read only on rows owned by the recipient; ids belonging
// to other users are silently skipped.
func (r *notificationRepository) MarkRead(ids []uint, recipientID uint) (int64, error) {
	res := r.db.Model(&models.Notification{}).
		Where("id IN ? AND recipient_id = ? AND is_read = ?", ids, recipientID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
