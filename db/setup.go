package db

import (
	"github.com/dev-ventures/ventures/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	// TranslateError surfaces unique-constraint violations as
	// gorm.ErrDuplicatedKey, so insert races lose cleanly with a 409.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.UpworkJob{},
		&models.UpworkProfile{},
		&models.Proposal{},
		&models.Project{},
		&models.ProjectMember{},
		&models.ProjectAttachment{},
		&models.Task{},
		&models.TaskAttachment{},
		&models.TaskDeliverable{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
