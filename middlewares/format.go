package middlewares

import (
	"PatientDesk/services"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// RespondError maps a service error to its HTTP status and writes
// {"error": message}. NotFound is 404, Validation is 400 and everything
// else is a 500 whose cause is logged but never sent to the client.
func RespondError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var invalid *services.ValidationError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": unexpectedErrorMessage})
	}
}
