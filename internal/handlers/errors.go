package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cashbook-app/cashbook-sync/internal/apperrors"
	"github.com/cashbook-app/cashbook-sync/internal/middleware"
)

// respondWithError maps application errors onto HTTP statuses. Permission
// failures keep their reason in the body; everything else gets a generic
// message so backend details stay out of responses.
func respondWithError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var permErr *apperrors.PermissionError
	if errors.As(err, &permErr) {
		logger.Warn("Permission denied", slog.String("action", permErr.Action), slog.String("ledger", permErr.LedgerKey), slog.String("reason", permErr.Reason))
		c.JSON(http.StatusForbidden, gin.H{"error": permErr.Reason})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidLedgerRef), errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Invalid request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict"})
	case errors.Is(err, apperrors.ErrNetwork):
		logger.Error("Backend unreachable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Backend unavailable"})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
