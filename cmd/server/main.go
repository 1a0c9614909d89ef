// Server khởi động Task-Flow activity audit log service.
// Thứ tự khởi tạo: config -> logger -> validator -> MongoDB -> registry ->
// index -> Fiber app.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/a-sakhautdinov/task-flow/config"
	"github.com/a-sakhautdinov/task-flow/internal/database"
	"github.com/a-sakhautdinov/task-flow/internal/global"
	"github.com/a-sakhautdinov/task-flow/internal/logger"
)

func main() {
	// Khởi tạo logging trước tiên để các bước sau có thể ghi log
	if err := logger.Init(nil); err != nil {
		panic(err)
	}
	log := logger.GetAppLogger()

	// Đọc cấu hình từ file env
	cfg := config.NewConfig()
	if cfg == nil {
		log.Fatal("Failed to load configuration")
	}
	global.ServerConfig = cfg

	// Đăng ký các custom validator
	global.InitValidator()

	// Kết nối MongoDB
	client, err := database.GetInstance(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	global.MongoDB_Session = client
	defer func() {
		_ = database.CloseInstance(client)
	}()

	// Đăng ký collections và tạo index
	if err := InitCollections(); err != nil {
		log.WithError(err).Fatal("Failed to initialize collections")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := InitDatabaseData(ctx); err != nil {
		cancel()
		log.WithError(err).Fatal("Failed to initialize database data")
	}
	cancel()

	// Khởi tạo Fiber app và đăng ký routes
	app, err := InitFiber(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize Fiber app")
	}

	// Chạy server trong goroutine riêng để main có thể chờ tín hiệu shutdown
	go func() {
		log.WithField("address", cfg.Address).Info("Starting server")
		if err := app.Listen(cfg.Address); err != nil {
			log.WithError(err).Fatal("Server stopped unexpectedly")
		}
	}()

	// Graceful shutdown khi nhận SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
	log.Info("Server stopped")
}
