package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"quiz-parlement-backend/logger"
)

// RequestLogger trace chaque requête HTTP (méthode, chemin, statut, latence).
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.L.Infow("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
		)
	}
}
