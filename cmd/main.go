package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"quiz-parlement-backend/config"
	"quiz-parlement-backend/logger"
	"quiz-parlement-backend/middleware"
	"quiz-parlement-backend/routes"
)

func main() {
	// .env facultatif en production
	_ = godotenv.Load()

	if err := logger.Init(os.Getenv("APP_ENV")); err != nil {
		panic(err)
	}
	defer logger.Sync()

	config.InitDB()
	if err := config.Seed(config.DB); err != nil {
		logger.L.Fatalw("initialisation de la base impossible", "error", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middlewareCORS())

	routes.SetupRouter(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	logger.L.Infow("serveur démarré", "port", port)
	if err := r.Run(":" + port); err != nil {
		logger.L.Fatalw("arrêt du serveur", "error", err)
	}
}

func middlewareCORS() gin.HandlerFunc {
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	return cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	})
}
