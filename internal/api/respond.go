package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/users-generator-api/internal/models"
)

const validationFailedMessage = "The given data was invalid."

func respondValidation(c *gin.Context, verr *models.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":  validationFailedMessage,
		"fields": verr.Fields,
	})
}

// respondError maps service errors to status codes. Anything unrecognised
// is logged and reported as a 500.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		respondValidation(c, verr)
	case errors.Is(err, models.ErrMalformedInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid JSON file"})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.InvalidCredentialsMessage})
	case errors.Is(err, models.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": unauthenticatedMessage})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
