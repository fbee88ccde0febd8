package orm

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adopour/backend/internal/lib"
)

const PostContentMaxLength = 5000

type Post struct {
	ID          uuid.UUID  `gorm:"primaryKey"`
	AuthorID    uuid.UUID  `gorm:"index"`
	Author      Profile    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CommunityID *uuid.UUID `gorm:"index"`
	Community   *Community `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE"`
	Content     string     `gorm:"type:text"`
	ImageURL    string
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	LikesCount    int64 `gorm:"->;-:migration"`
	CommentsCount int64 `gorm:"->;-:migration"`
	IsLiked       bool  `gorm:"->;-:migration"`
}

func (p *Post) TableName() string {
	return "posts"
}

func (p *Post) ValidateContent() error {
	if strings.TrimSpace(p.Content) == "" {
		return gorm.ErrInvalidData
	}
	if utf8.RuneCountInString(p.Content) > PostContentMaxLength {
		return errors.New("post content exceeds length limit")
	}
	return nil
}

func (p *Post) BeforeCreate(transaction *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return p.ValidateContent()
}

func (p Post) GetID() uuid.UUID {
	return p.ID
}

func (p Post) GetCreatedAt() time.Time {
	return p.CreatedAt
}

// PostFilter narrows a post listing. Nil fields are ignored.
type PostFilter struct {
	AuthorID    *uuid.UUID
	CommunityID *uuid.UUID
}

func (c *PostgresClient) postQuery(viewerID uuid.UUID) *gorm.DB {
	return c.database.
		Model(&Post{}).
		Select(
			`posts.*,
			(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count,
			(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count,
			EXISTS (SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS is_liked`,
			viewerID,
		).
		Preload("Author").
		Preload("Community")
}

// SelectPostByID loads a post with its counters as seen by viewerID.
// Pass uuid.Nil for anonymous viewers.
func (c *PostgresClient) SelectPostByID(id string, viewerID uuid.UUID) (*Post, error) {
	var post Post
	tx := c.postQuery(viewerID).
		Where("posts.id = ?", id).
		First(&post)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &post, nil
}

// SelectPosts lists posts newest first using keyset pagination.
func (c *PostgresClient) SelectPosts(filter PostFilter, viewerID uuid.UUID, cursor string, limit int) ([]*Post, error) {
	var posts []*Post
	query := c.postQuery(viewerID).
		Order("posts.created_at DESC, posts.id DESC")

	if filter.AuthorID != nil {
		query = query.Where("posts.author_id = ?", *filter.AuthorID)
	}
	if filter.CommunityID != nil {
		query = query.Where("posts.community_id = ?", *filter.CommunityID)
	}

	paginatedQuery, err := lib.Paginate[Post](c.database, query, cursor, limit)
	if err != nil {
		return nil, err
	}

	tx := paginatedQuery.Find(&posts)
	if tx.Error != nil {
		return nil, tx.Error
	}

	return posts, nil
}

func (c *PostgresClient) CountPostsByAuthor(authorID uuid.UUID) (int64, error) {
	var count int64
	tx := c.database.
		Model(&Post{}).
		Where("author_id = ?", authorID).
		Count(&count)
	return count, tx.Error
}

// InsertPost stores the post and bumps the community post counter.
func (c *PostgresClient) InsertPost(post *Post) error {
	return c.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		if post.CommunityID == nil {
			return nil
		}
		return tx.
			Model(&Community{}).
			Where("id = ?", *post.CommunityID).
			UpdateColumn("post_count", gorm.Expr("post_count + 1")).
			Error
	})
}

// DeletePost removes the post and decrements the community post counter.
func (c *PostgresClient) DeletePost(post *Post) error {
	return c.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", post.ID).Delete(&Post{}).Error; err != nil {
			return err
		}
		if post.CommunityID == nil {
			return nil
		}
		return tx.
			Model(&Community{}).
			Where("id = ?", *post.CommunityID).
			UpdateColumn("post_count", gorm.Expr("GREATEST(post_count - 1, 0)")).
			Error
	})
}
