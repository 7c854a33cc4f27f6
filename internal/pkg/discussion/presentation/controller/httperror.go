package controller

import (
	"errors"
	"net/http"

	discussion "pairingbook/internal/pkg/discussion/application/domain"
	"pairingbook/internal/pkg/discussion/application/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps use case failures onto HTTP statuses. Expected domain
// failures become structured client errors; only persistence failures are
// logged and returned as an opaque 500.
func respondError(c *gin.Context, err error) {
	var conflict *usecase.AlreadyRequestedError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error(), "status": conflict.Status})
	case errors.Is(err, discussion.ErrNotFound),
		errors.Is(err, discussion.ErrParticipantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, discussion.ErrNotAuthor),
		errors.Is(err, discussion.ErrAuthorWithdraw),
		errors.Is(err, discussion.ErrNotViewable):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrPersistence):
		log.Error().Err(err).Str("path", c.FullPath()).Msg("discussion request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		// capacity, invalid decision, and input validation failures
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
