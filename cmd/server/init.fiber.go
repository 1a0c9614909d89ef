package main

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"github.com/a-sakhautdinov/task-flow/config"
	auditrouter "github.com/a-sakhautdinov/task-flow/internal/api/audit/router"
	authrouter "github.com/a-sakhautdinov/task-flow/internal/api/auth/router"
	basehdl "github.com/a-sakhautdinov/task-flow/internal/api/base/handler"
	"github.com/a-sakhautdinov/task-flow/internal/common"
)

// InitFiber khởi tạo Fiber app với middleware chung và đăng ký routes
func InitFiber(cfg *config.Configuration) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:      "task-flow-audit",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: fiberErrorHandler,
	})

	// Middleware chung: gắn request id, bắt panic, CORS, rate limit
	app.Use(requestid.New())
	app.Use(recoverer.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORS_Origins, ","),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: cfg.CORS_AllowCredentials,
	}))

	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
		}))
	}

	// Health check không cần xác thực
	app.Get("/health", basehdl.HandleHealth)

	// Routes nghiệp vụ dưới prefix /api/v1
	api := app.Group("/api/v1")
	if err := authrouter.SetupAuthRoutes(api); err != nil {
		return nil, err
	}
	if err := auditrouter.SetupAuditRoutes(api); err != nil {
		return nil, err
	}

	return app, nil
}

// fiberErrorHandler chuyển các lỗi lọt ra khỏi handler về envelope chuẩn
func fiberErrorHandler(c fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(basehdl.JSONResponse{
			Code:    common.ErrCodeInternalServer.Code,
			Message: fiberErr.Message,
		})
	}

	return basehdl.HandleError(c, err)
}
