package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"quiz-parlement-backend/logger"
	"quiz-parlement-backend/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleAdminWebSocket ouvre le flux d'événements du panneau d'admin.
// Le token passe en query (les WebSocket n'ont pas d'en-tête Authorization
// côté navigateur).
func HandleAdminWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token manquant"})
		return
	}
	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token invalide ou expiré"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L.Errorw("upgrade WebSocket impossible", "error", err)
		return
	}
	H.Register(conn)
	logger.L.Infow("admin WS connecté", "admin_id", claims.AdminID)
}
