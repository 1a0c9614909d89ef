package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/a-sakhautdinov/task-flow/config"
	"github.com/a-sakhautdinov/task-flow/internal/registry"
)

// CollectionName chứa tên các collection trong MongoDB
type CollectionName struct {
	Users        string // Tên collection cho người dùng
	ActivityLogs string // Tên collection cho activity log (login, logout, register, password_reset)
}

// Các biến toàn cục
var Validate *validator.Validate          // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client         // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration    // Cấu hình của server
var MongoDB_ColNames = CollectionName{    // Tên các collection
	Users:        "auth_users",
	ActivityLogs: "activity_logs",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
