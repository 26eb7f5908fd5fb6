package db

import (
	"github.com/datadues/campaign-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDatabase opens a pooled connection and hands it back to the caller.
// Components receive the handle at construction instead of reaching for a
// package global, so tests can run against independent databases.
func ConnectDatabase(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Surface duplicate-key and foreign-key failures as
		// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
		TranslateError: true,
	})
}

func MigrateDatabase(conn *gorm.DB) error {
	entities := []interface{}{
		&models.User{},
		&models.Campaign{},
		&models.Action{},
		&models.UserCampaign{},
		&models.UserAction{},
	}

	migrator := conn.Migrator()

	for _, entity := range entities {
		if !migrator.HasTable(entity) {
			if err := conn.AutoMigrate(entity); err != nil {
				return err
			}
		}
	}

	return nil
}
