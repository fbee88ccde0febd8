package orm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactRequest struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	Name      string
	Email     string
	Company   string
	Message   string `gorm:"type:text"`
	CreatedAt time.Time
}

func (r *ContactRequest) TableName() string {
	return "contact_requests"
}

func (r *ContactRequest) BeforeCreate(transaction *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (c *PostgresClient) SelectContactRequestByID(id string) (*ContactRequest, error) {
	var request ContactRequest
	tx := c.database.
		Where("id = ?", id).
		First(&request)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &request, nil
}

func (c *PostgresClient) InsertContactRequest(request *ContactRequest) error {
	tx := c.database.Create(request)
	return tx.Error
}
