// Package auditrouter đăng ký các route cho domain audit
package auditrouter

import (
	"github.com/gofiber/fiber/v3"

	audithdl "github.com/a-sakhautdinov/task-flow/internal/api/audit/handler"
	"github.com/a-sakhautdinov/task-flow/internal/api/middleware"
)

// SetupAuditRoutes đăng ký các route audit dưới prefix /audit.
// Toàn bộ surface yêu cầu token hợp lệ; truy vấn, thống kê và xóa
// chỉ dành cho admin.
func SetupAuditRoutes(api fiber.Router) error {
	handler, err := audithdl.NewAuditLogHandler()
	if err != nil {
		return err
	}

	audit := api.Group("/audit", middleware.AuthenticateToken())
	adminOnly := middleware.RequireRole(middleware.RoleAdmin)

	audit.Post("/logs", handler.HandleCreateLog)
	audit.Get("/logs", handler.HandleQueryLogs, adminOnly)
	audit.Get("/logs/me", handler.HandleListMyActivity)
	audit.Get("/filters", handler.HandleGetFilterOptions, adminOnly)
	audit.Get("/stats", handler.HandleGetStats, adminOnly)
	audit.Delete("/logs/:id", handler.HandleDeleteLog, adminOnly)
	audit.Delete("/logs", handler.HandleBulkDeleteLogs, adminOnly)

	return nil
}
