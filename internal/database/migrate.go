package database

import (
	"gorm.io/gorm"

	"github.com/dboiago/Memoix-sub000/internal/model"
)

// RunMigrations brings the schema up to date. Both the embedded sqlite store
// and postgres use GORM auto-migration; the models are the schema.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Recipe{},
		&model.User{},
	)
}
