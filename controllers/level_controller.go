package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quiz-parlement-backend/config"
	"quiz-parlement-backend/services"
	"quiz-parlement-backend/ws"
)

// GetLevels liste tous les niveaux (actifs et inactifs) triés par ordre.
func GetLevels(c *gin.Context) {
	levels, err := services.ListLevels(config.DB)
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la récupération des niveaux")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(levels),
		"data":    levels,
	})
}

// CreateLevel crée un niveau (clé et ordre uniques).
func CreateLevel(c *gin.Context) {
	var input services.CreateLevelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données envoyées invalides"})
		return
	}

	level, err := services.CreateLevel(config.DB, input)
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la création du niveau")
		return
	}

	ws.NotifyContentChanged("level", "created", level.ID.String())
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": level})
}

// UpdateLevel applique une mise à jour partielle d'un niveau.
func UpdateLevel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant de niveau invalide"})
		return
	}

	var input services.UpdateLevelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données envoyées invalides"})
		return
	}

	level, err := services.UpdateLevel(config.DB, id, input)
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la mise à jour du niveau")
		return
	}

	ws.NotifyContentChanged("level", "updated", level.ID.String())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": level})
}

// DeleteLevel supprime un niveau et recompacte l'ordre des niveaux restants.
func DeleteLevel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant de niveau invalide"})
		return
	}

	if err := services.DeleteLevel(config.DB, id); err != nil {
		handleServiceError(c, err, "Erreur lors de la suppression du niveau")
		return
	}

	ws.NotifyContentChanged("level", "deleted", id.String())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Niveau supprimé avec succès",
		"data":    gin.H{},
	})
}
