package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/cashbook-app/cashbook-sync/internal/core/ports/services"
	"github.com/cashbook-app/cashbook-sync/internal/dto"
	"github.com/cashbook-app/cashbook-sync/internal/middleware"
)

// membersHandler handles HTTP requests for shared accounts, members and
// invitations.
type membersHandler struct {
	membershipService portssvc.MembershipSvcFacade
}

// newMembersHandler creates a new membersHandler.
func newMembersHandler(ms portssvc.MembershipSvcFacade) *membersHandler {
	return &membersHandler{
		membershipService: ms,
	}
}

// registerMemberRoutes registers account and invitation routes.
func registerMemberRoutes(rg *gin.RouterGroup, membershipService portssvc.MembershipSvcFacade) {
	h := newMembersHandler(membershipService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:account_id/members", h.listMembers)
		accounts.PATCH("/:account_id/members/:member_id", h.updateMemberPermissions)
		accounts.DELETE("/:account_id/members/:member_id", h.removeMember)
	}

	invitations := rg.Group("/invitations")
	{
		invitations.GET("", h.listInvites)
		invitations.POST("/:invite_id/respond", h.respondToInvite)
	}
}

func (h *membersHandler) callerID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

func (h *membersHandler) listAccounts(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	accounts, err := h.membershipService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list accounts")
		return
	}

	list := make([]dto.SharedAccountResponse, len(accounts))
	for i := range accounts {
		list[i] = dto.ToSharedAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, gin.H{"accounts": list})
}

func (h *membersHandler) listMembers(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	accountID := c.Param("account_id")
	refresh, _ := strconv.ParseBool(c.Query("refresh"))

	members, err := h.membershipService.ListMembers(c.Request.Context(), userID, accountID, refresh)
	if err != nil {
		respondWithError(c, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMembersResponse(members))
}

func (h *membersHandler) updateMemberPermissions(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("account_id")
	memberID := c.Param("member_id")

	var req dto.UpdateMemberPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateMemberPermissions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	member, err := h.membershipService.UpdateMemberPermissions(c.Request.Context(), userID, accountID, memberID, req.Permissions.ToDomain())
	if err != nil {
		respondWithError(c, err, "Failed to update member permissions")
		return
	}

	logger.Info("Member permissions updated", slog.String("account_id", accountID), slog.String("member_id", memberID))
	c.JSON(http.StatusOK, dto.ToAccountMemberResponse(member))
}

func (h *membersHandler) removeMember(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("account_id")
	memberID := c.Param("member_id")

	if err := h.membershipService.RemoveMember(c.Request.Context(), userID, accountID, memberID); err != nil {
		respondWithError(c, err, "Failed to remove member")
		return
	}

	logger.Info("Member removed", slog.String("account_id", accountID), slog.String("member_id", memberID))
	c.Status(http.StatusNoContent)
}

func (h *membersHandler) listInvites(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	invites, err := h.membershipService.ListInvites(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list invitations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvitesResponse(invites))
}

func (h *membersHandler) respondToInvite(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	inviteID := c.Param("invite_id")

	var req dto.RespondToInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for respondToInvite", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invite, err := h.membershipService.RespondToInvite(c.Request.Context(), userID, inviteID, *req.Accept)
	if err != nil {
		respondWithError(c, err, "Failed to respond to invitation")
		return
	}

	logger.Info("Invitation answered", slog.String("invite_id", inviteID), slog.Bool("accepted", *req.Accept))
	c.JSON(http.StatusOK, dto.ToAccountInviteResponse(invite))
}
