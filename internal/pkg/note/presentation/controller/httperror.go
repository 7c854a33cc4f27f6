package controller

import (
	"errors"
	"net/http"

	note "pairingbook/internal/pkg/note/application/domain"
	"pairingbook/internal/pkg/note/application/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps note use case failures onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, note.ErrThreadNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, note.ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrPersistence):
		log.Error().Err(err).Str("path", c.FullPath()).Msg("note request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
