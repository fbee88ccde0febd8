package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ormpkg "github.com/adopour/backend/internal/orm"
)

var migrateCommand = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  "",
	RunE: func(cmd *cobra.Command, args []string) error {
		return migrateCommandImpl()
	},
}

func migrateCommandImpl() error {
	loadEnv()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, err := ormpkg.NewPostgresClient(
		getenv("POSTGRES_HOST", "127.0.0.1"),
		getenv("POSTGRES_PORT", "5432"),
		getenv("POSTGRES_USER", "postgres"),
		getenv("POSTGRES_PASSWORD", "postgres"),
		getenv("POSTGRES_DATABASE", "adopour"),
	)
	if err != nil {
		logger.Error("error connecting to postgres", zap.Error(err))
		return err
	}
	defer client.Close()

	err = client.Migrate()
	if err != nil {
		logger.Error("error migrating database", zap.Error(err))
		return err
	}

	logger.Info("database migrated")
	return nil
}

func init() {
	rootCommand.AddCommand(migrateCommand)
}
