package database

import (
	"Planting/internal/api/config"
	"Planting/internal/model"
	"context"
	"fmt"
	log "log/slog"

	"gorm.io/gorm"
)

// AutoMigrate 建表
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

// SeedBoards 按名称补齐配置中的版块，已存在的不会被修改
func SeedBoards(ctx context.Context, db *gorm.DB, seeds []config.BoardSeed) error {
	for _, seed := range seeds {
		board := model.Board{Name: seed.Name, Description: seed.Description}
		result := db.WithContext(ctx).
			Where(model.Board{Name: seed.Name}).
			Attrs(model.Board{Description: seed.Description}).
			FirstOrCreate(&board)
		if result.Error != nil {
			return fmt.Errorf("seed board %q failed: %w", seed.Name, result.Error)
		}
		if result.RowsAffected > 0 {
			log.InfoContext(ctx, "Board created", "board_id", board.ID, "name", board.Name)
		}
	}
	return nil
}
