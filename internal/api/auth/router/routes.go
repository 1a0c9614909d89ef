// Package authrouter đăng ký các route cho domain auth
package authrouter

import (
	"github.com/gofiber/fiber/v3"

	authhdl "github.com/a-sakhautdinov/task-flow/internal/api/auth/handler"
	"github.com/a-sakhautdinov/task-flow/internal/api/middleware"
)

// SetupAuthRoutes đăng ký các route auth dưới prefix /auth.
// Logout yêu cầu token hợp lệ để xác định phiên cần kết thúc.
func SetupAuthRoutes(api fiber.Router) error {
	handler, err := authhdl.NewUserHandler()
	if err != nil {
		return err
	}

	auth := api.Group("/auth")

	auth.Post("/register", handler.HandleRegister)
	auth.Post("/login", handler.HandleLogin)
	auth.Post("/logout", handler.HandleLogout, middleware.AuthenticateToken())
	auth.Post("/password-reset", handler.HandlePasswordReset)

	return nil
}
