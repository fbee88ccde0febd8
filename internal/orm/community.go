package orm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Community struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex"`
	DisplayName string
	Description string
	AvatarURL   string
	BannerURL   string
	CreatorID   uuid.UUID
	Creator     Profile `gorm:"foreignKey:CreatorID"`
	MemberCount int     `gorm:"default:0"`
	PostCount   int     `gorm:"default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	IsJoined bool `gorm:"->;-:migration"`
}

func (c *Community) TableName() string {
	return "communities"
}

func (c Community) GetID() uuid.UUID {
	return c.ID
}

func (c Community) GetCreatedAt() time.Time {
	return c.CreatedAt
}

func (c *Community) BeforeCreate(transaction *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *PostgresClient) communityQuery(viewerID uuid.UUID) *gorm.DB {
	return c.database.
		Model(&Community{}).
		Select(
			`communities.*,
			EXISTS (SELECT 1 FROM community_members WHERE community_members.community_id = communities.id AND community_members.user_id = ?) AS is_joined`,
			viewerID,
		).
		Preload("Creator")
}

func (c *PostgresClient) SelectCommunityByName(name string, viewerID uuid.UUID) (*Community, error) {
	var community Community
	tx := c.communityQuery(viewerID).
		Where("communities.name = ?", name).
		First(&community)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &community, nil
}

// SelectCommunities lists communities by member count, largest first,
// optionally filtered by display name or description.
func (c *PostgresClient) SelectCommunities(query string, viewerID uuid.UUID, limit int) ([]*Community, error) {
	var communities []*Community
	tx := c.communityQuery(viewerID).
		Order("communities.member_count DESC, communities.created_at DESC")

	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where(
			"communities.display_name ILIKE ? OR communities.description ILIKE ?",
			pattern,
			pattern,
		)
	}

	if err := tx.Limit(limit).Find(&communities).Error; err != nil {
		return nil, err
	}

	return communities, nil
}

// InsertCommunity stores the community and enrolls its creator with the
// given role in a single transaction.
func (c *PostgresClient) InsertCommunity(community *Community, creatorRole string) error {
	return c.database.Transaction(func(tx *gorm.DB) error {
		community.MemberCount = 1
		if err := tx.Omit(clause.Associations).Create(community).Error; err != nil {
			return err
		}
		member := &CommunityMember{
			CommunityID: community.ID,
			UserID:      community.CreatorID,
			Role:        creatorRole,
		}
		return tx.Omit(clause.Associations).Create(member).Error
	})
}

// JoinCommunity enrolls the user and reports whether a membership was created.
func (c *PostgresClient) JoinCommunity(communityID, userID uuid.UUID, role string) (bool, error) {
	created := false
	err := c.database.Transaction(func(tx *gorm.DB) error {
		insert := tx.
			Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&CommunityMember{
				CommunityID: communityID,
				UserID:      userID,
				Role:        role,
			})
		if insert.Error != nil {
			return insert.Error
		}
		if insert.RowsAffected == 0 {
			return nil
		}
		created = true
		return tx.
			Model(&Community{}).
			Where("id = ?", communityID).
			UpdateColumn("member_count", gorm.Expr("member_count + 1")).
			Error
	})
	return created, err
}

// LeaveCommunity removes the membership and reports whether one existed.
func (c *PostgresClient) LeaveCommunity(communityID, userID uuid.UUID) (bool, error) {
	removed := false
	err := c.database.Transaction(func(tx *gorm.DB) error {
		remove := tx.
			Where("community_id = ? AND user_id = ?", communityID, userID).
			Delete(&CommunityMember{})
		if remove.Error != nil {
			return remove.Error
		}
		if remove.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.
			Model(&Community{}).
			Where("id = ?", communityID).
			UpdateColumn("member_count", gorm.Expr("GREATEST(member_count - 1, 0)")).
			Error
	})
	return removed, err
}
