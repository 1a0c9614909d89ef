package basehdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/a-sakhautdinov/task-flow/internal/common"
	"github.com/a-sakhautdinov/task-flow/internal/global"
)

// HandleHealth kiểm tra tình trạng hoạt động của server và kết nối MongoDB
func HandleHealth(c fiber.Ctx) error {
	status := fiber.Map{
		"status": "ok",
		"time":   time.Now().UnixMilli(),
	}

	if global.MongoDB_Session != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := global.MongoDB_Session.Ping(ctx, nil); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
			return c.Status(common.StatusServiceUnavailable).JSON(status)
		}
		status["database"] = "ok"
	}

	return c.Status(common.StatusOK).JSON(status)
}
