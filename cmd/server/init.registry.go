package main

import (
	"fmt"

	"github.com/a-sakhautdinov/task-flow/internal/global"
	"github.com/a-sakhautdinov/task-flow/internal/logger"
)

// InitCollections đăng ký database và các collection vào registry toàn cục.
// Các service lấy collection từ registry thay vì giữ tham chiếu trực tiếp tới client.
func InitCollections() error {
	if global.MongoDB_Session == nil {
		return fmt.Errorf("MongoDB session is not initialized")
	}

	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_DBName)
	if _, err := global.RegistryDatabase.Register(global.ServerConfig.MongoDB_DBName, db); err != nil {
		return fmt.Errorf("failed to register database: %w", err)
	}

	collectionNames := []string{
		global.MongoDB_ColNames.Users,
		global.MongoDB_ColNames.ActivityLogs,
	}

	for _, name := range collectionNames {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			return fmt.Errorf("failed to register collection %s: %w", name, err)
		}
	}

	logger.GetAppLogger().
		WithField("collections", collectionNames).
		Info("Collections registered")

	return nil
}
