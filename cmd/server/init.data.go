package main

import (
	"context"
	"fmt"

	"github.com/a-sakhautdinov/task-flow/internal/database"
	"github.com/a-sakhautdinov/task-flow/internal/global"
	"github.com/a-sakhautdinov/task-flow/internal/logger"
)

// InitDatabaseData chuẩn bị dữ liệu nền cho database: các index phục vụ
// filter/sort của query engine và lookup session-linkage.
func InitDatabaseData(ctx context.Context) error {
	db, exists := global.RegistryDatabase.Get(global.ServerConfig.MongoDB_DBName)
	if !exists {
		return fmt.Errorf("database %s not registered", global.ServerConfig.MongoDB_DBName)
	}

	if err := database.CreateAuditIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to create audit indexes: %w", err)
	}

	logger.GetAppLogger().Info("Audit indexes ready")
	return nil
}
