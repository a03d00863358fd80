package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/services"
	"github.com/atticuslegal/practice_mgmt_app/internal/dto"
	"github.com/atticuslegal/practice_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// trustHandler handles HTTP requests for trust accounting.
type trustHandler struct {
	trustService portssvc.TrustSvcFacade
}

func registerTrustRoutes(rg *gin.RouterGroup, trustService portssvc.TrustSvcFacade) {
	h := &trustHandler{trustService: trustService}

	accounts := rg.Group("/trust-accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("", h.listAccounts)

		accounts.POST("/:id/ledgers", h.createLedger)
		accounts.GET("/:id/ledgers", h.listLedgers)

		accounts.POST("/:id/transactions", h.recordTransaction)
		accounts.GET("/:id/transactions", h.listTransactions)

		accounts.POST("/:id/reconciliations", h.reconcile)
		accounts.GET("/:id/reconciliations", h.listReconciliations)
	}

	ledgers := rg.Group("/ledgers")
	{
		ledgers.GET("/:id/transactions", h.listLedgerTransactions)
	}
}

// createAccount godoc
// @Summary Register a trust account
// @Description Registers a firm trust bank account. Only the last 4 digits of account and routing numbers are accepted.
// @Tags trust
// @Accept json
// @Produce json
// @Param account body dto.CreateTrustAccountRequest true "Account details"
// @Success 201 {object} dto.TrustAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trust-accounts [post]
func (h *trustHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTrustAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.trustService.CreateTrustAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create trust account")
		return
	}

	logger.Info("Trust account registered", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToTrustAccountResponse(account))
}

// getAccount godoc
// @Summary Get a trust account by ID
// @Tags trust
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.TrustAccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trust-accounts/{id} [get]
func (h *trustHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.trustService.GetTrustAccount(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve trust account")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrustAccountResponse(account))
}

// listAccounts godoc
// @Summary List trust accounts
// @Tags trust
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.TrustAccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trust-accounts [get]
func (h *trustHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid pagination params: " + err.Error()})
		return
	}

	accounts, err := h.trustService.ListTrustAccounts(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list trust accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTrustAccountResponse(accounts))
}

// createLedger godoc
// @Summary Open a client sub-ledger
// @Description Opens a per-client ledger within a trust account, starting at zero balance.
// @Tags trust
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param ledger body dto.CreateLedgerRequest true "Ledger details"
// @Success 201 {object} dto.LedgerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trust-accounts/{id}/ledgers [post]
func (h *trustHandler) createLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	ledger, err := h.trustService.CreateLedger(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create ledger")
		return
	}

	logger.Info("Client ledger opened", slog.String("ledger_id", ledger.LedgerID), slog.String("account_id", ledger.AccountID))
	c.JSON(http.StatusCreated, dto.ToLedgerResponse(ledger))
}

// listLedgers godoc
// @Summary List client sub-ledgers for an account
// @Tags trust
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {array} dto.LedgerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trust-accounts/{id}/ledgers [get]
func (h *trustHandler) listLedgers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ledgers, err := h.trustService.ListLedgers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list ledgers")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerResponse(ledgers))
}

// recordTransaction godoc
// @Summary Record a trust transaction
// @Description Appends one immutable ledger entry. A withdrawal, fee or outgoing transfer that would overdraw the client ledger fails with 409 and writes nothing.
// @Tags trust
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param transaction body dto.RecordTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Insufficient trust funds"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trust-accounts/{id}/transactions [post]
func (h *trustHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.trustService.RecordTransaction(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record transaction")
		return
	}

	logger.Info("Trust transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("ledger_id", txn.LedgerID),
		slog.String("type", string(txn.TransactionType)),
		slog.String("balance_after", txn.BalanceAfter.String()))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions for an account
// @Tags trust
// @Produce json
// @Param id path string true "Account ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trust-accounts/{id}/transactions [get]
func (h *trustHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid pagination params: " + err.Error()})
		return
	}

	txns, err := h.trustService.ListTransactions(c.Request.Context(), c.Param("id"), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// listLedgerTransactions godoc
// @Summary List transactions for a client ledger
// @Tags trust
// @Produce json
// @Param id path string true "Ledger ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledgers/{id}/transactions [get]
func (h *trustHandler) listLedgerTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid pagination params: " + err.Error()})
		return
	}

	txns, err := h.trustService.ListLedgerTransactions(c.Request.Context(), c.Param("id"), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list ledger transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// reconcile godoc
// @Summary Reconcile an account against a bank statement
// @Description Compares the account's book balance against an external statement balance and records the outcome. Balances are never mutated.
// @Tags trust
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param reconciliation body dto.ReconcileRequest true "Statement details"
// @Success 201 {object} dto.ReconciliationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trust-accounts/{id}/reconciliations [post]
func (h *trustHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rec, err := h.trustService.Reconcile(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reconcile account")
		return
	}

	logger.Info("Reconciliation recorded",
		slog.String("reconciliation_id", rec.ReconciliationID),
		slog.Bool("is_balanced", rec.IsBalanced))
	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(rec))
}

// listReconciliations godoc
// @Summary List reconciliations for an account
// @Tags trust
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {array} dto.ReconciliationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trust-accounts/{id}/reconciliations [get]
func (h *trustHandler) listReconciliations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	recs, err := h.trustService.ListReconciliations(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list reconciliations")
		return
	}

	c.JSON(http.StatusOK, dto.ToListReconciliationResponse(recs))
}
