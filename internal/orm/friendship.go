package orm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	FriendshipStatusPending  = "pending"
	FriendshipStatusAccepted = "accepted"
)

// Friendship is directed: UserID asked FriendID. An accepted friendship is
// stored in both directions.
type Friendship struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_friendships_user_friend"`
	User      Profile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FriendID  uuid.UUID `gorm:"uniqueIndex:idx_friendships_user_friend"`
	Friend    Profile   `gorm:"foreignKey:FriendID;constraint:OnDelete:CASCADE"`
	Status    string    `gorm:"default:pending"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (f *Friendship) TableName() string {
	return "friendships"
}

func (f *Friendship) BeforeCreate(transaction *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (c *PostgresClient) SelectFriendshipByID(id string) (*Friendship, error) {
	var friendship Friendship
	tx := c.database.
		Where("id = ?", id).
		First(&friendship)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &friendship, nil
}

func (c *PostgresClient) SelectFriendship(userID, friendID uuid.UUID) (*Friendship, error) {
	var friendship Friendship
	tx := c.database.
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		First(&friendship)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &friendship, nil
}

// InsertFriendship stores a pending request and reports whether it is new.
func (c *PostgresClient) InsertFriendship(friendship *Friendship) (bool, error) {
	tx := c.database.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(friendship)
	return tx.RowsAffected > 0, tx.Error
}

// AcceptFriendship marks the request accepted and writes the reverse edge.
func (c *PostgresClient) AcceptFriendship(friendship *Friendship) error {
	return c.database.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Model(&Friendship{}).
			Where("id = ?", friendship.ID).
			Update("status", FriendshipStatusAccepted).
			Error
		if err != nil {
			return err
		}

		reverse := &Friendship{
			UserID:   friendship.FriendID,
			FriendID: friendship.UserID,
			Status:   FriendshipStatusAccepted,
		}
		return tx.
			Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "friend_id"}},
				DoUpdates: clause.Assignments(map[string]any{"status": FriendshipStatusAccepted}),
			}).
			Create(reverse).
			Error
	})
}

func (c *PostgresClient) CountFriends(userID uuid.UUID) (int64, error) {
	var count int64
	tx := c.database.
		Model(&Friendship{}).
		Where("user_id = ? AND status = ?", userID, FriendshipStatusAccepted).
		Count(&count)
	return count, tx.Error
}
