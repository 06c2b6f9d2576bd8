package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeeping-app/bookkeeping_app/internal/dto"
	"github.com/bookkeeping-app/bookkeeping_app/internal/exporters"
	"github.com/bookkeeping-app/bookkeeping_app/internal/middleware"
)

// reportingHandler handles HTTP requests for the derived financial
// reports. Reports can be returned as JSON or, with format=csv, as a
// downloadable spreadsheet.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/profit-and-loss", h.getProfitAndLoss)
	}
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	balance, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to generate balance sheet", slog.String("error", err.Error()))
		respondWithError(c, err, "Chart of accounts not found")
		return
	}

	if c.Query("format") == "csv" {
		filename := fmt.Sprintf("balance_%s.csv", asOf.Format("2006-01-02"))
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Header("Content-Type", "text/csv")
		if err := exporters.WriteCSV(c.Writer, exporters.BalanceMatrix(balance)); err != nil {
			logger.Error("Failed to write balance sheet csv", slog.String("error", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(balance, asOf))
}

func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	yearStr := c.DefaultQuery("year", strconv.Itoa(time.Now().Year()))
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), year)
	if err != nil {
		logger.Error("Failed to generate profit and loss report", slog.Int("year", year), slog.String("error", err.Error()))
		respondWithError(c, err, fmt.Sprintf("No ledger found for year %d", year))
		return
	}

	if c.Query("format") == "csv" {
		filename := fmt.Sprintf("profit_loss_%d.csv", year)
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Header("Content-Type", "text/csv")
		if err := exporters.WriteCSV(c.Writer, exporters.ProfitLossMatrix(report)); err != nil {
			logger.Error("Failed to write profit and loss csv", slog.String("error", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitLossResponse(report))
}
