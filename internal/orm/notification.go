package orm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	NotificationTypeLike          = "like"
	NotificationTypeComment       = "comment"
	NotificationTypeFriendRequest = "friend_request"
)

type Notification struct {
	ID          uuid.UUID  `gorm:"primaryKey"`
	RecipientID uuid.UUID  `gorm:"index"`
	ActorID     uuid.UUID  `gorm:"index"`
	Actor       Profile    `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
	Type        string
	PostID      *uuid.UUID
	IsRead      bool `gorm:"default:false"`
	CreatedAt   time.Time
}

func (n *Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(transaction *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (c *PostgresClient) SelectNotifications(recipientID uuid.UUID, unreadOnly bool, limit int) ([]*Notification, error) {
	var notifications []*Notification
	tx := c.database.
		Preload("Actor").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC")

	if unreadOnly {
		tx = tx.Where("is_read = ?", false)
	}

	if err := tx.Limit(limit).Find(&notifications).Error; err != nil {
		return nil, err
	}

	return notifications, nil
}

func (c *PostgresClient) CountUnreadNotifications(recipientID uuid.UUID) (int64, error) {
	var count int64
	tx := c.database.
		Model(&Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count)
	return count, tx.Error
}

func (c *PostgresClient) InsertNotification(notification *Notification) error {
	tx := c.database.Omit(clause.Associations).Create(notification)
	return tx.Error
}

// MarkNotificationRead reports whether a notification owned by the recipient
// was found.
func (c *PostgresClient) MarkNotificationRead(id string, recipientID uuid.UUID) (bool, error) {
	tx := c.database.
		Model(&Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	return tx.RowsAffected > 0, tx.Error
}

func (c *PostgresClient) MarkAllNotificationsRead(recipientID uuid.UUID) (int64, error) {
	tx := c.database.
		Model(&Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	return tx.RowsAffected, tx.Error
}
