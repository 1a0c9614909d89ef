// Package middleware chứa các middleware xác thực và phân quyền cho API
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/a-sakhautdinov/task-flow/internal/api/base/handler"
	"github.com/a-sakhautdinov/task-flow/internal/common"
	"github.com/a-sakhautdinov/task-flow/internal/global"
	"github.com/a-sakhautdinov/task-flow/internal/utility"
)

// RoleAdmin là vai trò có quyền truy cập các API quản trị (audit log, thống kê)
const RoleAdmin = "admin"

// AuthenticateToken xác thực JWT token từ header Authorization.
// Sau khi xác thực thành công, userId và role được lưu vào Locals
// để các handler phía sau sử dụng.
func AuthenticateToken() fiber.Handler {
	return func(c fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		claims, err := utility.ParseToken(global.ServerConfig.JwtSecret, tokenString)
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_role", claims.Role)

		return c.Next()
	}
}

// RequireRole kiểm tra vai trò của người dùng đã xác thực.
// Phải được đặt sau AuthenticateToken trong chuỗi middleware.
func RequireRole(role string) fiber.Handler {
	return func(c fiber.Ctx) error {
		userRole, _ := c.Locals("user_role").(string)
		if userRole != role {
			return basehdl.HandleError(c, common.ErrForbidden)
		}
		return c.Next()
	}
}

// extractBearerToken lấy token từ header "Authorization: Bearer <token>"
func extractBearerToken(c fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", common.ErrTokenMissing
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", common.ErrTokenInvalid
	}

	return parts[1], nil
}
