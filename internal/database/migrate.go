package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yakov100/recipe-book-sub000/internal/model"
)

// Migrate brings the schema up to date for every entity the repository owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Recipe{}, &model.Setting{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
