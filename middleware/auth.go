package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quiz-parlement-backend/config"
	"quiz-parlement-backend/models"
	"quiz-parlement-backend/utils"
)

// AuthMiddleware exige un token Bearer valide et un compte administrateur
// encore actif. L'identifiant admin est posé dans le contexte.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Accès non autorisé, token manquant"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "En-tête Authorization invalide"})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token invalide ou expiré"})
			c.Abort()
			return
		}

		var admin models.Admin
		if err := config.DB.First(&admin, "id = ?", claims.AdminID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Administrateur non trouvé"})
			c.Abort()
			return
		}
		if !admin.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Compte administrateur désactivé"})
			c.Abort()
			return
		}

		c.Set("admin_id", admin.ID.String())
		c.Next()
	}
}
