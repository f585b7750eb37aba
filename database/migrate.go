package database

import (
	"civilregistry/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func MigrateDatabase(db *gorm.DB, log logrus.FieldLogger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.BirthRecord{},
		&models.IDCardRecord{},
		&models.DeathRecord{},
	)
	if err != nil {
		log.WithError(err).Error("migration failed")
		return err
	}

	log.Info("database migrations completed")
	return nil
}
