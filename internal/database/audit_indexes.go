// Package database - Index cho collection activity_logs (compound, phục vụ filter/sort và session-linkage).
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/a-sakhautdinov/task-flow/internal/global"
)

// CreateAuditIndexes tạo các index compound cho activity_logs.
// Các cặp (userId, createdAt desc), (action, createdAt desc), (role, createdAt desc)
// giữ cho các đường filter/sort của query engine hiệu quả; index
// (userId, action, loginTime desc) phục vụ lookup session-linkage khi ghi logout.
func CreateAuditIndexes(ctx context.Context, db *mongo.Database) error {
	logs := db.Collection(global.MongoDB_ColNames.ActivityLogs)

	// (userId, createdAt desc) — filter theo user + sort mặc định
	if _, err := logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("activity_log_user_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// (action, createdAt desc) — filter theo action
	if _, err := logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "action", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("activity_log_action_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// (role, createdAt desc) — filter theo role
	if _, err := logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "role", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("activity_log_role_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// (userId, action, loginTime desc) — lookup login gần nhất khi ghi logout
	if _, err := logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "action", Value: 1},
			{Key: "loginTime", Value: -1},
		},
		Options: options.Index().SetName("activity_log_session_linkage").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
