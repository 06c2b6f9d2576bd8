package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookkeeping-app/bookkeeping_app/internal/apperrors"
	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeeping-app/bookkeeping_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerHomeRoutes(r)

	v1 := r.Group("/api/v1")
	registerAccountRoutes(v1, services.Account)
	registerContactRoutes(v1, services.Contact)
	registerTransactionRoutes(v1, services.Ledger)
	registerLedgerRoutes(v1, services)
	registerReportingRoutes(v1, services.Reporting)
}

// respondWithError maps application errors onto HTTP statuses.
func respondWithError(c *gin.Context, err error, notFoundMsg string) {
	var importErr *apperrors.ImportError
	switch {
	case errors.As(err, &importErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": importErr.Error(), "row": importErr.Row})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
