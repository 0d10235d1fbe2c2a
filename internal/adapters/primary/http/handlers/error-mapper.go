package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Conflict errors
	case errors.Is(err, domain.ErrTrainingAlreadyRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrEmptyDatasetRef),
		errors.Is(err, domain.ErrEmptyDataset):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Engine unavailable errors
	case errors.Is(err, domain.ErrModelUnavailable),
		errors.Is(err, domain.ErrEngineNotReady),
		errors.Is(err, domain.ErrEngineShuttingDown),
		errors.Is(err, domain.ErrSessionClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
