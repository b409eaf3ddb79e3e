package routes

import (
	"github.com/gin-gonic/gin"

	"quiz-parlement-backend/controllers"
	"quiz-parlement-backend/middleware"
	"quiz-parlement-backend/ws"
)

// SetupRouter enregistre toutes les routes de l'API.
func SetupRouter(r *gin.Engine) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.GET("/profile", middleware.AuthMiddleware(), controllers.GetProfile)
		auth.POST("/change-password", middleware.AuthMiddleware(), controllers.ChangePassword)
	}

	// Niveaux : lecture publique, gestion réservée aux admins.
	levels := api.Group("/levels")
	{
		levels.GET("", controllers.GetLevels)
		levels.POST("", middleware.AuthMiddleware(), controllers.CreateLevel)
		levels.PUT("/:id", middleware.AuthMiddleware(), controllers.UpdateLevel)
		levels.DELETE("/:id", middleware.AuthMiddleware(), controllers.DeleteLevel)
	}

	admin := api.Group("/admin")
	{
		admin.Use(middleware.AuthMiddleware())

		admin.GET("/questions", controllers.GetQuestions)
		admin.GET("/questions/:id", controllers.GetQuestionByID)
		admin.POST("/questions", controllers.CreateQuestion)
		admin.PUT("/questions/:id", controllers.UpdateQuestion)
		admin.DELETE("/questions/:id", controllers.DeleteQuestion)
		admin.POST("/questions/reorder", controllers.ReorderQuestions)
	}

	quiz := api.Group("/quiz")
	{
		quiz.GET("/levels/:levelId/questions", controllers.GetQuizQuestions)
		quiz.GET("/levels/:levelId/stats", controllers.GetLevelStats)
		quiz.POST("/submit", controllers.SubmitQuiz)
		quiz.GET("/results/:resultId", controllers.GetQuizResult)
	}

	r.GET("/ws/admin", ws.HandleAdminWebSocket)

	return r
}
