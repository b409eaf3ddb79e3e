package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"quiz-parlement-backend/config"
	"quiz-parlement-backend/logger"
	"quiz-parlement-backend/models"
	"quiz-parlement-backend/utils"
)

// Login authentifie un administrateur et délivre un JWT.
func Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Veuillez fournir un nom d'utilisateur et un mot de passe"})
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, "username = ?", input.Username).Error; err != nil || !admin.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Nom d'utilisateur ou mot de passe incorrect"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Nom d'utilisateur ou mot de passe incorrect"})
		return
	}

	now := time.Now()
	admin.LastLogin = &now
	if err := config.DB.Model(&admin).UpdateColumn("last_login", now).Error; err != nil {
		logger.L.Errorw("mise à jour de last_login impossible", "error", err)
	}

	token, err := utils.GenerateToken(admin.ID.String())
	if err != nil {
		logger.L.Errorw("génération du token impossible", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Une erreur est survenue lors de la connexion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token": token,
			"admin": gin.H{
				"id":        admin.ID,
				"username":  admin.Username,
				"lastLogin": admin.LastLogin,
			},
		},
	})
}

// GetProfile retourne le profil de l'administrateur connecté.
func GetProfile(c *gin.Context) {
	adminID := c.GetString("admin_id")

	var admin models.Admin
	if err := config.DB.First(&admin, "id = ?", adminID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Administrateur non trouvé"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"admin": gin.H{
				"id":        admin.ID,
				"username":  admin.Username,
				"lastLogin": admin.LastLogin,
				"createdAt": admin.CreatedAt,
			},
		},
	})
}

// ChangePassword remplace le mot de passe après vérification de l'actuel.
func ChangePassword(c *gin.Context) {
	var input struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Mot de passe actuel et nouveau mot de passe (8 caractères minimum) requis"})
		return
	}

	adminID := c.GetString("admin_id")
	var admin models.Admin
	if err := config.DB.First(&admin, "id = ?", adminID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Administrateur non trouvé"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Mot de passe actuel incorrect"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Une erreur est survenue lors du changement de mot de passe"})
		return
	}
	if err := config.DB.Model(&admin).UpdateColumn("password", string(hashed)).Error; err != nil {
		logger.L.Errorw("mise à jour du mot de passe impossible", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Une erreur est survenue lors du changement de mot de passe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Mot de passe mis à jour avec succès"})
}
