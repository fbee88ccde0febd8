package orm

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type PostAnalysis struct {
	PostID    uuid.UUID       `gorm:"primaryKey"`
	Post      Post            `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Analysis  json.RawMessage `gorm:"type:jsonb"`
	IsSafe    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *PostAnalysis) TableName() string {
	return "post_analyses"
}

func (c *PostgresClient) SelectPostAnalysis(postID string) (*PostAnalysis, error) {
	var analysis PostAnalysis
	tx := c.database.
		Select([]string{
			"post_id",
			"analysis",
			"is_safe",
			"created_at",
			"updated_at",
		}).
		Where("post_id = ?", postID).
		First(&analysis)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &analysis, nil
}

// UpsertPostAnalysis replaces any earlier analysis of the same post.
func (c *PostgresClient) UpsertPostAnalysis(analysis *PostAnalysis) error {
	tx := c.database.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"analysis", "is_safe", "updated_at"}),
		}).
		Create(analysis)
	return tx.Error
}
