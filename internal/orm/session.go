package orm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Session struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	ProfileID uuid.UUID `gorm:"index"`
	Profile   Profile   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	UserAgent string
	IpAddress string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Session) TableName() string {
	return "sessions"
}

func (s *Session) BeforeCreate(transaction *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (c *PostgresClient) SelectSessionByID(id string) (*Session, error) {
	var session Session
	tx := c.database.
		Select([]string{
			"id",
			"profile_id",
			"user_agent",
			"ip_address",
			"created_at",
			"updated_at",
		}).
		Where("id = ?", id).
		First(&session)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &session, nil
}

func (c *PostgresClient) InsertSession(session *Session) error {
	tx := c.database.Create(session)
	return tx.Error
}

// TouchSession bumps updated_at so idle sessions can be expired.
func (c *PostgresClient) TouchSession(session *Session) error {
	tx := c.database.
		Model(session).
		Update("updated_at", time.Now())
	return tx.Error
}

func (c *PostgresClient) DeleteSession(session *Session) error {
	tx := c.database.Delete(session)
	return tx.Error
}

// DeleteStaleSessions removes sessions idle for longer than maxIdle.
func (c *PostgresClient) DeleteStaleSessions(maxIdle time.Duration) (int64, error) {
	tx := c.database.
		Where("updated_at < ?", time.Now().Add(-maxIdle)).
		Delete(&Session{})

	return tx.RowsAffected, tx.Error
}
