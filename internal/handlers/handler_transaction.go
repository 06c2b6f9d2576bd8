package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeeping-app/bookkeeping_app/internal/dto"
	"github.com/bookkeeping-app/bookkeeping_app/internal/middleware"
)

type transactionHandler struct {
	ledgerService portssvc.LedgerSvc
}

func newTransactionHandler(ls portssvc.LedgerSvc) *transactionHandler {
	return &transactionHandler{ledgerService: ls}
}

func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc) {
	h := newTransactionHandler(ledgerService)

	transactionGroup := rg.Group("/transactions")
	{
		transactionGroup.POST("", h.createTransaction)
		transactionGroup.GET("", h.listTransactions)
		transactionGroup.GET("/:transaction_id", h.getTransaction)
		transactionGroup.PUT("/:transaction_id", h.updateTransaction)
		transactionGroup.DELETE("/:transaction_id", h.deleteTransaction)
	}
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.RecordTransaction(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to record transaction", slog.String("error", err.Error()))
		respondWithError(c, err, "Account not found")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.ledgerService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Ledger not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToTransactionResponses(txns)})
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	transactionID := c.Param("transaction_id")

	txn, err := h.ledgerService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		respondWithError(c, err, "Transaction not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transaction_id")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.UpdateTransaction(c.Request.Context(), transactionID, req)
	if err != nil {
		logger.Error("Failed to update transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		respondWithError(c, err, "Transaction not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transaction_id")

	if err := h.ledgerService.DeleteTransaction(c.Request.Context(), transactionID); err != nil {
		logger.Warn("Failed to delete transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		respondWithError(c, err, "Transaction not found")
		return
	}

	c.Status(http.StatusNoContent)
}
