package orm

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PostgresClient struct {
	database *gorm.DB
}

func NewPostgresClient(host string, port string, user string, password string, name string) (*PostgresClient, error) {
	database, err := gorm.Open(
		postgres.Open(
			fmt.Sprintf(
				"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				host,
				port,
				user,
				password,
				name,
			),
		),
		&gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		},
	)
	if err != nil {
		return nil, err
	}

	rawDatabase, err := database.DB()
	if err != nil {
		return nil, err
	}

	rawDatabase.SetMaxOpenConns(10)
	rawDatabase.SetMaxIdleConns(5)
	rawDatabase.SetConnMaxIdleTime(5 * time.Second)

	return &PostgresClient{
		database: database,
	}, nil
}

// NewPostgresClientFromDB wraps an already opened gorm handle.
func NewPostgresClientFromDB(database *gorm.DB) *PostgresClient {
	return &PostgresClient{
		database: database,
	}
}

func (c *PostgresClient) Migrate() error {
	return c.database.AutoMigrate(
		&Profile{},
		&Session{},
		&Community{},
		&CommunityMember{},
		&Post{},
		&Like{},
		&Comment{},
		&Friendship{},
		&PostAnalysis{},
		&Notification{},
		&ContactRequest{},
	)
}

func (c *PostgresClient) Ping() error {
	rawDatabase, err := c.database.DB()
	if err != nil {
		return err
	}
	return rawDatabase.Ping()
}

func (c *PostgresClient) Close() error {
	rawDatabase, err := c.database.DB()
	if err != nil {
		return err
	}
	return rawDatabase.Close()
}
