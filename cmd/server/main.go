package main

import (
	"os"
	"time"

	"boleto-management-backend/internal/config"
	"boleto-management-backend/internal/models"
	"boleto-management-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, relying on system env")
	}

	db, err := config.InitDB()
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.Lote{},
		&models.Boleto{},
		&models.ImportBatch{},
	); err != nil {
		logger.Fatal("running migrations", zap.Error(err))
	}

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, logger)

	if err := r.Run(":" + config.ServerPort()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
