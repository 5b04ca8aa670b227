package main

import (
	"fmt"
	"log"

	_ "reembolsos/api/swagger" // swagger docs
	"reembolsos/internal/config"
	"reembolsos/internal/database"
	"reembolsos/internal/handler"
	"reembolsos/internal/repository"
	"reembolsos/internal/service"
	"reembolsos/internal/websocket"
	"reembolsos/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Reembolsos API
// @version         1.0
// @description     Administrative API for creating and tracking reimbursement payment requests, plus the public payment-link surface.
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	zlog := logger.New(cfg.Logging.File, cfg.Logging.Prod)
	defer func() { _ = zlog.Sync() }()

	db, err := database.NewConnection(cfg.Database.DSN())
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	zlog.Info("connected to PostgreSQL")

	// Live dashboard feed
	wsHub := websocket.NewHub(zlog)
	go wsHub.Run()

	// Repository -> Service -> Handler
	reimbursementRepo := repository.NewReimbursementRepository(db)
	txManager := repository.NewTransactionManager(db)
	reimbursementService := service.NewReimbursementService(reimbursementRepo, txManager, wsHub, cfg.Server.PublicBaseURL)

	reimbursementHandler := handler.NewReimbursementHandler(reimbursementService, zlog)
	pageHandler := handler.NewPageHandler(reimbursementService, zlog)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Server-rendered pages and static assets
	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/static", "web/static")

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	reimbursementHandler.RegisterRoutes(router.Group(""))
	pageHandler.RegisterRoutes(router)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zlog.Info("server listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zlog.Fatal("server failed", zap.Error(err))
	}
}
