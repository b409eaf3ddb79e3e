package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quiz-parlement-backend/config"
	"quiz-parlement-backend/services"
)

// GetQuizQuestions assemble une session de quiz pour un niveau actif.
func GetQuizQuestions(c *gin.Context) {
	levelID, err := uuid.Parse(c.Param("levelId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant de niveau invalide"})
		return
	}

	limit := services.DefaultSessionLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	session, err := services.GetSessionQuestions(config.DB, levelID, limit)
	if err != nil {
		handleServiceError(c, err, "Une erreur est survenue lors de la récupération des questions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": session})
}

// SubmitQuiz valide et note une soumission puis persiste le résultat.
func SubmitQuiz(c *gin.Context) {
	var input services.SubmitQuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données envoyées invalides"})
		return
	}

	result, err := services.SubmitQuiz(config.DB, input)
	if err != nil {
		handleServiceError(c, err, "Une erreur est survenue lors de la soumission du quiz")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"result": result}})
}

// GetLevelStats agrège les résultats d'un niveau et ses dix derniers scores.
func GetLevelStats(c *gin.Context) {
	levelID, err := uuid.Parse(c.Param("levelId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant de niveau invalide"})
		return
	}

	stats, err := services.GetLevelStats(config.DB, levelID)
	if err != nil {
		handleServiceError(c, err, "Une erreur est survenue lors de la récupération des statistiques")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// GetQuizResult retourne un résultat persisté, normalisé pour l'affichage.
func GetQuizResult(c *gin.Context) {
	resultID, err := uuid.Parse(c.Param("resultId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant de résultat invalide"})
		return
	}

	result, err := services.GetQuizResult(config.DB, resultID)
	if err != nil {
		handleServiceError(c, err, "Une erreur est survenue lors de la récupération du résultat")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"result": result}})
}
