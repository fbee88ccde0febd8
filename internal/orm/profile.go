package orm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profile struct {
	ID                uuid.UUID `gorm:"primaryKey"`
	Email             string    `gorm:"uniqueIndex"`
	Password          string
	Salt              string
	Username          string `gorm:"uniqueIndex"`
	DisplayName       string
	Bio               string
	AvatarURL         string
	IsDeveloper       bool `gorm:"default:false"`
	IsAdmin           bool `gorm:"default:false"`
	IsVerified        bool `gorm:"default:false"`
	EmailConfirmed    bool `gorm:"default:false"`
	VerificationToken string `gorm:"index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (p *Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(transaction *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p Profile) GetID() uuid.UUID {
	return p.ID
}

func (p Profile) GetCreatedAt() time.Time {
	return p.CreatedAt
}

// CanModerate reports whether the profile may remove content it does not own.
func (p *Profile) CanModerate() bool {
	return p.IsDeveloper || p.IsAdmin
}

var profileColumns = []string{
	"id",
	"email",
	"password",
	"salt",
	"username",
	"display_name",
	"bio",
	"avatar_url",
	"is_developer",
	"is_admin",
	"is_verified",
	"email_confirmed",
	"verification_token",
	"created_at",
	"updated_at",
}

func (c *PostgresClient) selectProfile(where string, value any) (*Profile, error) {
	var profile Profile
	tx := c.database.
		Select(profileColumns).
		Where(where, value).
		First(&profile)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &profile, nil
}

func (c *PostgresClient) SelectProfileByID(id string) (*Profile, error) {
	return c.selectProfile("id = ?", id)
}

func (c *PostgresClient) SelectProfileByEmail(email string) (*Profile, error) {
	return c.selectProfile("email = ?", email)
}

func (c *PostgresClient) SelectProfileByUsername(username string) (*Profile, error) {
	return c.selectProfile("username = ?", username)
}

func (c *PostgresClient) SelectProfileByVerificationToken(token string) (*Profile, error) {
	return c.selectProfile("verification_token = ?", token)
}

// SearchProfiles returns profiles newest first, optionally filtered by a
// case-insensitive match on username, display name or email.
func (c *PostgresClient) SearchProfiles(query string, limit int) ([]*Profile, error) {
	var profiles []*Profile
	tx := c.database.
		Select(profileColumns).
		Order("created_at DESC")

	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where(
			"username ILIKE ? OR display_name ILIKE ? OR email ILIKE ?",
			pattern,
			pattern,
			pattern,
		)
	}

	if err := tx.Limit(limit).Find(&profiles).Error; err != nil {
		return nil, err
	}

	return profiles, nil
}

func (c *PostgresClient) CountProfiles() (int64, error) {
	var count int64
	if err := c.database.Model(&Profile{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (c *PostgresClient) InsertProfile(profile *Profile) error {
	tx := c.database.Create(profile)
	return tx.Error
}

// UpdateProfileFields writes the given columns, including zero values.
func (c *PostgresClient) UpdateProfileFields(id uuid.UUID, fields map[string]any) error {
	tx := c.database.
		Model(&Profile{}).
		Where("id = ?", id).
		Updates(fields)
	return tx.Error
}
