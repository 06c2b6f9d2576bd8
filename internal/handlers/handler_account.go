package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeeping-app/bookkeeping_app/internal/dto"
	"github.com/bookkeeping-app/bookkeeping_app/internal/middleware"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvc
}

func newAccountHandler(as portssvc.AccountSvc) *accountHandler {
	return &accountHandler{accountService: as}
}

func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvc) {
	h := newAccountHandler(accountService)

	accountGroup := rg.Group("/accounts")
	{
		accountGroup.POST("", h.createAccount)
		accountGroup.GET("", h.listAccounts)
		accountGroup.GET("/:account_id", h.getAccount)
		accountGroup.PUT("/:account_id", h.updateAccount)
		accountGroup.DELETE("/:account_id", h.deleteAccount)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid account creation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to create account", slog.String("error", err.Error()))
		respondWithError(c, err, "Chart of accounts not found")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var statementType *domain.StatementType
	if params.StatementType != "" {
		st := domain.StatementType(params.StatementType)
		statementType = &st
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), statementType)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		respondWithError(c, err, "Chart of accounts not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToListAccountsResponse(accounts)})
}

func (h *accountHandler) getAccount(c *gin.Context) {
	accountID := c.Param("account_id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err, "Account not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("account_id")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req)
	if err != nil {
		logger.Error("Failed to update account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		respondWithError(c, err, "Account not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("account_id")

	if err := h.accountService.DeleteAccount(c.Request.Context(), accountID); err != nil {
		logger.Warn("Failed to delete account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		respondWithError(c, err, "Account not found")
		return
	}

	c.Status(http.StatusNoContent)
}
