package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/cashbook-app/cashbook-sync/internal/core/ports/services"
	"github.com/cashbook-app/cashbook-sync/internal/dto"
	"github.com/cashbook-app/cashbook-sync/internal/middleware"
)

// notificationsHandler handles HTTP requests for account notifications.
type notificationsHandler struct {
	membershipService portssvc.MembershipSvcFacade
}

// registerNotificationRoutes registers notification routes.
func registerNotificationRoutes(rg *gin.RouterGroup, membershipService portssvc.MembershipSvcFacade) {
	h := &notificationsHandler{membershipService: membershipService}

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("/:notification_id/read", h.markRead)
	}
}

func (h *notificationsHandler) listNotifications(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notifications, err := h.membershipService.ListNotifications(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, dto.ToListNotificationsResponse(notifications))
}

func (h *notificationsHandler) markRead(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	notificationID := c.Param("notification_id")

	if err := h.membershipService.MarkNotificationRead(c.Request.Context(), userID, notificationID); err != nil {
		respondWithError(c, err, "Failed to mark notification read")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Notification marked read", slog.String("notification_id", notificationID))
	c.Status(http.StatusNoContent)
}
