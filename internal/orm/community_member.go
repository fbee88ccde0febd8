package orm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CommunityRoleAdmin     = "admin"
	CommunityRoleModerator = "moderator"
	CommunityRoleMember    = "member"
)

type CommunityMember struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	CommunityID uuid.UUID `gorm:"uniqueIndex:idx_community_members_community_user"`
	Community   Community `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE"`
	UserID      uuid.UUID `gorm:"uniqueIndex:idx_community_members_community_user"`
	User        Profile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Role        string    `gorm:"default:member"`
	CreatedAt   time.Time
}

func (m *CommunityMember) TableName() string {
	return "community_members"
}

func (m *CommunityMember) BeforeCreate(transaction *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// CanManage reports whether the member may moderate the community.
func (m *CommunityMember) CanManage() bool {
	return m.Role == CommunityRoleAdmin || m.Role == CommunityRoleModerator
}

func (c *PostgresClient) SelectCommunityMember(communityID, userID uuid.UUID) (*CommunityMember, error) {
	var member CommunityMember
	tx := c.database.
		Select([]string{
			"id",
			"community_id",
			"user_id",
			"role",
			"created_at",
		}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		First(&member)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &member, nil
}
