package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
	portssvc "github.com/cashbook-app/cashbook-sync/internal/core/ports/services"
	"github.com/cashbook-app/cashbook-sync/internal/dto"
	"github.com/cashbook-app/cashbook-sync/internal/middleware"
)

// syncHandler handles HTTP requests for ledger state and transactions.
type syncHandler struct {
	syncService portssvc.SyncSvcFacade
}

// newSyncHandler creates a new syncHandler.
func newSyncHandler(ss portssvc.SyncSvcFacade) *syncHandler {
	return &syncHandler{
		syncService: ss,
	}
}

// registerSyncRoutes registers ledger-scoped transaction routes.
func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvcFacade) {
	h := newSyncHandler(syncService)

	ledgers := rg.Group("/ledgers/:ledger_id")
	{
		ledgers.GET("/transactions", h.loadLedger)
		ledgers.POST("/transactions", h.addTransaction)
		ledgers.PUT("/transactions/:txn_id", h.editTransaction)
		ledgers.DELETE("/transactions/:txn_id", h.deleteTransaction)
		ledgers.GET("/summary", h.getSummary)
		ledgers.GET("/state", h.getState)
		ledgers.POST("/refresh", h.forceRefresh)
		ledgers.POST("/activate", h.activate)
	}
}

// resolveRequest pulls the ledger and the calling user out of the request.
func (h *syncHandler) resolveRequest(c *gin.Context) (domain.Ledger, string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ledger, err := domain.ResolveLedgerRef(c.Param("ledger_id"))
	if err != nil {
		respondWithError(c, err, "Invalid ledger reference")
		return domain.Ledger{}, "", false
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Ledger{}, "", false
	}
	return ledger, userID, true
}

func (h *syncHandler) loadLedger(c *gin.Context) {
	ledger, userID, ok := h.resolveRequest(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	force, _ := strconv.ParseBool(c.Query("force"))
	state, err := h.syncService.LoadLedger(c.Request.Context(), ledger, userID, force)
	if err != nil {
		respondWithError(c, err, "Failed to load ledger")
		return
	}

	logger.Info("Ledger loaded",
		slog.String("ledger", ledger.String()),
		slog.Int("transactions", len(state.Transactions)),
		slog.Bool("degraded", state.Degraded))
	c.JSON(http.StatusOK, dto.ToLedgerStateResponse(state))
}

func (h *syncHandler) getSummary(c *gin.Context) {
	ledger, userID, ok := h.resolveRequest(c)
	if !ok {
		return
	}

	state, err := h.syncService.LoadLedger(c.Request.Context(), ledger, userID, false)
	if err != nil {
		respondWithError(c, err, "Failed to load summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(&state.Summary))
}

// getState returns the currently published state without triggering a load.
func (h *syncHandler) getState(c *gin.Context) {
	ledger, _, ok := h.resolveRequest(c)
	if !ok {
		return
	}

	state, err := h.syncService.CurrentState(ledger.CacheKey())
	if err != nil {
		respondWithError(c, err, "Failed to read ledger state")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerStateResponse(state))
}

func (h *syncHandler) forceRefresh(c *gin.Context) {
	ledger, userID, ok := h.resolveRequest(c)
	if !ok {
		return
	}

	state, err := h.syncService.LoadLedger(c.Request.Context(), ledger, userID, true)
	if err != nil {
		respondWithError(c, err, "Failed to refresh ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerStateResponse(state))
}

func (h *syncHandler) activate(c *gin.Context) {
	ledger, _, ok := h.resolveRequest(c)
	if !ok {
		return
	}

	h.syncService.ActivateLedger(ledger)
	c.Status(http.StatusNoContent)
}

func (h *syncHandler) addTransaction(c *gin.Context) {
	ledger, userID, ok := h.resolveRequest(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := req.ToTransaction(uuid.NewString(), ledger.CacheKey(), userID)
	if err != nil {
		respondWithError(c, err, "Invalid transaction")
		return
	}

	state, err := h.syncService.Mutate(c.Request.Context(), domain.MutationAdd, ledger, userID, txn)
	if err != nil {
		respondWithError(c, err, "Failed to add transaction")
		return
	}

	logger.Info("Transaction added", slog.String("ledger", ledger.String()), slog.String("transaction_id", txn.ID))
	c.JSON(http.StatusCreated, dto.ToLedgerStateResponse(state))
}

func (h *syncHandler) editTransaction(c *gin.Context) {
	ledger, userID, ok := h.resolveRequest(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID := c.Param("txn_id")

	var req dto.SaveTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for editTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	// The original author survives an edit; the permission check needs it.
	// It comes from the published state, and stays empty when the ledger was
	// never loaded so that own-entry permissions deny rather than assume the
	// caller wrote the entry.
	txn, err := req.ToTransaction(txnID, ledger.CacheKey(), "")
	if err != nil {
		respondWithError(c, err, "Invalid transaction")
		return
	}
	if current, stateErr := h.syncService.CurrentState(ledger.CacheKey()); stateErr == nil {
		for i := range current.Transactions {
			if current.Transactions[i].ID == txnID {
				txn.CreatedBy = current.Transactions[i].CreatedBy
				break
			}
		}
	}

	state, err := h.syncService.Mutate(c.Request.Context(), domain.MutationEdit, ledger, userID, txn)
	if err != nil {
		respondWithError(c, err, "Failed to edit transaction")
		return
	}

	logger.Info("Transaction edited", slog.String("ledger", ledger.String()), slog.String("transaction_id", txnID))
	c.JSON(http.StatusOK, dto.ToLedgerStateResponse(state))
}

func (h *syncHandler) deleteTransaction(c *gin.Context) {
	ledger, userID, ok := h.resolveRequest(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID := c.Param("txn_id")

	txn := domain.Transaction{ID: txnID, LedgerID: ledger.CacheKey()}
	if current, stateErr := h.syncService.CurrentState(ledger.CacheKey()); stateErr == nil {
		for i := range current.Transactions {
			if current.Transactions[i].ID == txnID {
				txn = current.Transactions[i]
				break
			}
		}
	}

	state, err := h.syncService.Mutate(c.Request.Context(), domain.MutationDelete, ledger, userID, txn)
	if err != nil {
		respondWithError(c, err, "Failed to delete transaction")
		return
	}

	logger.Info("Transaction deleted", slog.String("ledger", ledger.String()), slog.String("transaction_id", txnID))
	c.JSON(http.StatusOK, dto.ToLedgerStateResponse(state))
}
