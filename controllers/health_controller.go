package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quiz-parlement-backend/config"
	"quiz-parlement-backend/ws"
)

// HealthCheck vérifie la connexion base et l'état du hub WebSocket.
func HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"db":        "ok",
		"websocket": ws.H.GetStats(),
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		response["db"] = "error"
		response["status"] = "degraded"
		c.JSON(http.StatusInternalServerError, response)
		return
	}
	if err := sqlDB.Ping(); err != nil {
		response["db"] = "error"
		response["status"] = "degraded"
		c.JSON(http.StatusInternalServerError, response)
		return
	}

	c.JSON(http.StatusOK, response)
}
