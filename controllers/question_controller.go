package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quiz-parlement-backend/config"
	"quiz-parlement-backend/services"
	"quiz-parlement-backend/ws"
)

// GetQuestions liste les questions, filtrables par niveau et par statut.
func GetQuestions(c *gin.Context) {
	var filter services.QuestionFilter

	if raw := c.Query("level"); raw != "" {
		levelID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant de niveau invalide"})
			return
		}
		filter.LevelID = &levelID
	}
	if raw := c.Query("isActive"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	questions, err := services.ListQuestions(config.DB, filter)
	if err != nil {
		handleServiceError(c, err, "Une erreur est survenue lors de la récupération des questions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"questions": questions}})
}

// GetQuestionByID retourne une question avec son niveau résolu.
func GetQuestionByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant de question invalide"})
		return
	}

	question, err := services.GetQuestion(config.DB, id)
	if err != nil {
		handleServiceError(c, err, "Une erreur est survenue lors de la récupération de la question")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"question": question}})
}

// CreateQuestion crée une question rattachée à un niveau actif.
func CreateQuestion(c *gin.Context) {
	var input services.CreateQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données envoyées invalides"})
		return
	}

	question, err := services.CreateQuestion(config.DB, input)
	if err != nil {
		handleServiceError(c, err, "Une erreur est survenue lors de la création de la question")
		return
	}

	ws.NotifyContentChanged("question", "created", question.ID.String())
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"question": question}})
}

// UpdateQuestion applique une mise à jour partielle d'une question.
func UpdateQuestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant de question invalide"})
		return
	}

	var input services.UpdateQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données envoyées invalides"})
		return
	}

	question, err := services.UpdateQuestion(config.DB, id, input)
	if err != nil {
		handleServiceError(c, err, "Une erreur est survenue lors de la mise à jour de la question")
		return
	}

	ws.NotifyContentChanged("question", "updated", question.ID.String())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"question": question}})
}

// DeleteQuestion supprime une question (sans recompacter les ordres voisins).
func DeleteQuestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identifiant de question invalide"})
		return
	}

	if err := services.DeleteQuestion(config.DB, id); err != nil {
		handleServiceError(c, err, "Une erreur est survenue lors de la suppression de la question")
		return
	}

	ws.NotifyContentChanged("question", "deleted", id.String())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Question supprimée avec succès"})
}

// ReorderQuestions applique une liste de paires (id, ordre) puis retourne la
// liste retriée du niveau.
func ReorderQuestions(c *gin.Context) {
	var input struct {
		LevelID   uuid.UUID              `json:"levelId" binding:"required"`
		Questions []services.ReorderPair `json:"questions" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID du niveau et liste des questions requis"})
		return
	}

	questions, err := services.ReorderQuestions(config.DB, input.LevelID, input.Questions)
	if err != nil {
		handleServiceError(c, err, "Une erreur est survenue lors de la réorganisation des questions")
		return
	}

	ws.NotifyContentChanged("question", "reordered", input.LevelID.String())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"questions": questions}})
}
