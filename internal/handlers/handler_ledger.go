package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeeping-app/bookkeeping_app/internal/importers"
	"github.com/bookkeeping-app/bookkeeping_app/internal/middleware"
)

// ledgerHandler handles ledger-level operations: looking up a fiscal
// year's ledger and importing a transaction spreadsheet into it.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
	importer      *importers.Importer
}

func newLedgerHandler(services *portssvc.ServiceContainer) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: services.Ledger,
		importer:      importers.NewImporter(services.Account, services.Contact, services.Ledger),
	}
}

func registerLedgerRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newLedgerHandler(services)

	ledgerGroup := rg.Group("/ledgers")
	{
		ledgerGroup.GET("/:year", h.getLedger)
		ledgerGroup.POST("/import", h.importLedger)
	}
}

func (h *ledgerHandler) getLedger(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	ledger, err := h.ledgerService.GetLedgerByYear(c.Request.Context(), year)
	if err != nil {
		respondWithError(c, err, "No ledger found for that year")
		return
	}

	c.JSON(http.StatusOK, ledger)
}

// importLedger accepts a CSV upload in the bookkeeping sheet layout and
// records its transactions. Transactions recorded before a failing row
// stay committed; the error response names the failing row.
func (h *ledgerHandler) importLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	matrix, err := importers.ReadCSV(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid CSV: " + err.Error()})
		return
	}

	result, err := h.importer.Import(c.Request.Context(), matrix)
	if err != nil {
		logger.Warn("Ledger import failed",
			slog.Int("imported", result.Imported),
			slog.String("error", err.Error()),
		)
		respondWithError(c, err, "Referenced resource not found")
		return
	}

	logger.Info("Ledger import completed",
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
	)
	c.JSON(http.StatusOK, gin.H{"imported": result.Imported, "skipped": result.Skipped})
}
