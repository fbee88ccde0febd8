package orm

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const CommentContentMaxLength = 2000

type Comment struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	PostID    uuid.UUID `gorm:"index"`
	AuthorID  uuid.UUID `gorm:"index"`
	Author    Profile   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Content   string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(transaction *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if strings.TrimSpace(c.Content) == "" {
		return gorm.ErrInvalidData
	}
	return nil
}

func (c Comment) GetID() uuid.UUID {
	return c.ID
}

func (c Comment) GetCreatedAt() time.Time {
	return c.CreatedAt
}

func (c *PostgresClient) SelectCommentByID(id string) (*Comment, error) {
	var comment Comment
	tx := c.database.
		Preload("Author").
		Where("id = ?", id).
		First(&comment)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &comment, nil
}

// SelectCommentsByPostID returns comments oldest first.
func (c *PostgresClient) SelectCommentsByPostID(postID uuid.UUID) ([]*Comment, error) {
	var comments []*Comment
	tx := c.database.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return comments, nil
}

func (c *PostgresClient) InsertComment(comment *Comment) error {
	tx := c.database.Omit(clause.Associations).Create(comment)
	return tx.Error
}

func (c *PostgresClient) CountCommentsByAuthor(authorID uuid.UUID) (int64, error) {
	var count int64
	tx := c.database.
		Model(&Comment{}).
		Where("author_id = ?", authorID).
		Count(&count)
	return count, tx.Error
}

func (c *PostgresClient) CountCommentsInCommunity(communityID uuid.UUID) (int64, error) {
	var count int64
	tx := c.database.
		Model(&Comment{}).
		Joins("JOIN posts ON posts.id = comments.post_id").
		Where("posts.community_id = ?", communityID).
		Count(&count)
	return count, tx.Error
}
