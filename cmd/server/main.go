package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/retro-fantasy/internal/api/handlers"
	"github.com/stitts-dev/retro-fantasy/pkg/config"
	"github.com/stitts-dev/retro-fantasy/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	logger.WithComponent("server").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting solve service")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	solveHandler := handlers.NewSolveHandler(cfg, structuredLogger)

	router.GET("/health", handlers.Health)
	v1 := router.Group("/api/v1")
	{
		v1.POST("/solve", solveHandler.Solve)
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		structuredLogger.Fatalf("Server failed: %v", err)
	}
}
