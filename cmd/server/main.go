package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mahmoud-sadrian/Bsc-project/internal/config"
	"github.com/mahmoud-sadrian/Bsc-project/internal/database"
	"github.com/mahmoud-sadrian/Bsc-project/internal/handler"
	"github.com/mahmoud-sadrian/Bsc-project/internal/middleware"
	"github.com/mahmoud-sadrian/Bsc-project/internal/repository"
	"github.com/mahmoud-sadrian/Bsc-project/internal/service"
	"github.com/mahmoud-sadrian/Bsc-project/internal/session"
	"github.com/mahmoud-sadrian/Bsc-project/internal/ws"
	"github.com/mahmoud-sadrian/Bsc-project/migrations"
	"github.com/mahmoud-sadrian/Bsc-project/pkg/auth"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm/logger"
)

// @title           Smartify24 API
// @version         1.0
// @description     Smart-home device control: users, devices, timers and activity logs.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @BasePath  /

func main() {
	// ==================== Load Config ====================
	cfg := config.Load()
	log.Printf("🚀 Starting Smartify24 API Server [env=%s]", cfg.App.Env)

	// ==================== Database ====================
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.App.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := database.Open(cfg.DB, gormLogger)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Printf("✅ Connected to database [driver=%s]", cfg.DB.Driver)

	// ==================== Run Migrations ====================
	if cfg.DB.Driver == config.DriverPostgres {
		if err := migrations.Run(cfg.DB.URL()); err != nil {
			log.Printf("⚠️  Migration warning: %v", err)
			log.Println("📦 Falling back to GORM AutoMigrate...")
			if err := database.AutoMigrate(db); err != nil {
				log.Fatalf("❌ %v", err)
			}
		}
	} else if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Println("✅ Database migrated successfully")

	// ==================== Redis ====================
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	log.Println("✅ Connected to Redis")

	// ==================== Initialize Layers ====================
	// Sessions: Redis record + signed cookie
	jwtManager := auth.NewJWTManager(cfg.Session.Secret, cfg.Session.TTL)
	sessions := session.NewManager(session.NewRedisStore(rdb), jwtManager, session.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
	})

	// Repositories
	userRepo := repository.NewUserRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	logRepo := repository.NewActivityLogRepository(db)

	// WebSocket Hub (with Redis Pub/Sub for horizontal scaling)
	hub := ws.NewHub(rdb)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go hub.Run(hubCtx)

	// Services
	authService := service.NewAuthService(userRepo)
	deviceService := service.NewDeviceService(db, deviceRepo, scheduleRepo, logRepo, hub)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	deviceHandler := handler.NewDeviceHandler(deviceService)
	wsHandler := handler.NewWSHandler(hub, deviceService)

	dispatcher := handler.NewDispatcher(map[handler.Route]gin.HandlerFunc{
		handler.RouteInfo:          handler.Info,
		handler.RouteSignup:        authHandler.Signup,
		handler.RouteSignin:        authHandler.Signin,
		handler.RouteLogout:        authHandler.Logout,
		handler.RouteListDevices:   deviceHandler.ListDevices,
		handler.RouteControlDevice: deviceHandler.ControlDevice,
		handler.RouteSetTimer:      deviceHandler.SetTimer,
		handler.RouteDeviceLogs:    deviceHandler.DeviceLogs,
		handler.RouteDeviceStatus:  deviceHandler.DeviceStatus,
	})

	// ==================== Gin Router ====================
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Serve swagger.json at /docs/swagger.json to avoid conflict with /swagger/* wildcard
	router.StaticFile("/docs/swagger.json", "./docs/swagger.json")
	url := ginSwagger.URL("/docs/swagger.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, url))

	// Global middleware
	router.Use(middleware.CORSMiddleware(cfg.CORS))

	router.GET("/health", handler.Health(db, rdb, hub))

	// ==================== API Routes ====================
	api := router.Group("")
	api.Use(sessions.Middleware())
	{
		api.Any("/api.php", dispatcher.Handle)
		api.Any("/api", dispatcher.Handle)
	}

	// WebSocket endpoint (device status feed)
	router.GET("/ws", wsHandler.HandleWebSocket)

	// ==================== Start Server ====================
	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	log.Printf("🌐 Smartify24 API running on http://0.0.0.0:%s/api.php", cfg.App.Port)
	log.Printf("📋 API docs: http://0.0.0.0:%s/swagger/index.html", cfg.App.Port)
	log.Printf("🔌 WebSocket: ws://0.0.0.0:%s/ws?device_id=<id>", cfg.App.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	// Give ongoing requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	hubCancel()
	if err := rdb.Close(); err != nil {
		log.Printf("⚠️  Redis close: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("✅ Server exited gracefully")
}
