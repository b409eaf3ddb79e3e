package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-parlement-backend/logger"
	"quiz-parlement-backend/services"
)

// handleServiceError traduit les erreurs typées des services en statut HTTP.
// Toute erreur inattendue est journalisée et masquée derrière un message
// générique.
func handleServiceError(c *gin.Context, err error, fallback string) {
	var nf *services.NotFoundError
	var ve *services.ValidationError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": nf.Message})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": ve.Message})
	default:
		logger.L.Errorw(fallback, "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fallback})
	}
}
