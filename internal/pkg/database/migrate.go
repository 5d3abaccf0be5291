package database

import (
	"Inkpost/internal/model"
	"fmt"
	log "log/slog"

	"gorm.io/gorm"
)

// AutoMigrate 创建或更新所有业务表
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Tag{},
		&model.PostTag{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	log.Info("Database schema migrated.")
	return nil
}
