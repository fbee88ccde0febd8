package orm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Like struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	PostID    uuid.UUID `gorm:"uniqueIndex:idx_likes_post_user"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_likes_post_user"`
	CreatedAt time.Time
}

func (l *Like) TableName() string {
	return "likes"
}

func (l *Like) BeforeCreate(transaction *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// InsertLike stores the like and reports whether a new row was created.
func (c *PostgresClient) InsertLike(postID, userID uuid.UUID) (bool, error) {
	tx := c.database.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Like{PostID: postID, UserID: userID})
	return tx.RowsAffected > 0, tx.Error
}

// DeleteLike removes the like and reports whether a row was deleted.
func (c *PostgresClient) DeleteLike(postID, userID uuid.UUID) (bool, error) {
	tx := c.database.
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&Like{})
	return tx.RowsAffected > 0, tx.Error
}

func (c *PostgresClient) CountLikesByPost(postID uuid.UUID) (int64, error) {
	var count int64
	tx := c.database.
		Model(&Like{}).
		Where("post_id = ?", postID).
		Count(&count)
	return count, tx.Error
}

func (c *PostgresClient) CountPostLikesByAuthor(authorID uuid.UUID) (int64, error) {
	var count int64
	tx := c.database.
		Model(&Like{}).
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.author_id = ?", authorID).
		Count(&count)
	return count, tx.Error
}

func (c *PostgresClient) CountPostLikesInCommunity(communityID uuid.UUID) (int64, error) {
	var count int64
	tx := c.database.
		Model(&Like{}).
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.community_id = ?", communityID).
		Count(&count)
	return count, tx.Error
}
