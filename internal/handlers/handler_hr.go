package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmcs-dev/cmcs_backend/internal/apperrors"
	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/dto"
	"github.com/cmcs-dev/cmcs_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// hrHandler handles the HR reporting and payment routes.
type hrHandler struct {
	claimService      portssvc.ClaimSvcFacade
	statisticsService portssvc.StatisticsSvcFacade
	reportService     portssvc.ReportSvcFacade
}

// newHRHandler creates a new hrHandler.
func newHRHandler(cs portssvc.ClaimSvcFacade, ss portssvc.StatisticsSvcFacade, rs portssvc.ReportSvcFacade) *hrHandler {
	return &hrHandler{
		claimService:      cs,
		statisticsService: ss,
		reportService:     rs,
	}
}

// registerHRRoutes registers the HR-only routes.
func registerHRRoutes(rg *gin.RouterGroup, claimService portssvc.ClaimSvcFacade, statisticsService portssvc.StatisticsSvcFacade, reportService portssvc.ReportSvcFacade) {
	h := newHRHandler(claimService, statisticsService, reportService)

	hr := rg.Group("/hr", middleware.RequireRole(domain.RoleHR))
	{
		hr.GET("/claims", h.listClaims)
		hr.GET("/statistics", h.getStatistics)
		hr.POST("/payments/batch", h.processBatchPayment)

		reports := hr.Group("/reports")
		{
			reports.GET("/invoice", h.getInvoiceReport)
			reports.GET("/summary", h.getPaymentSummary)
			reports.GET("/export", h.exportCSV)
			reports.GET("/payments.xlsx", h.exportPaymentXLSX)
			reports.GET("/performance/:lecturerID", h.getLecturerPerformance)
			reports.GET("/financial", h.getMonthlyFinancial)
		}
	}
}

// listClaims godoc
// @Summary List claims
// @Description Lists claims with optional status/month filters and token pagination
// @Tags hr
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Continuation token"
// @Param status query string false "Status filter"
// @Param month query string false "Month filter"
// @Success 200 {object} dto.ListClaimsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list claims"
// @Security BearerAuth
// @Router /hr/claims [get]
func (h *hrHandler) listClaims(c *gin.Context) {
	var params dto.ListClaimsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.claimService.ListClaims(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list claims", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list claims"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getStatistics godoc
// @Summary Claim statistics
// @Description Returns aggregate statistics over the full claim set
// @Tags hr
// @Produce json
// @Success 200 {object} dto.StatisticsResponse
// @Failure 500 {object} map[string]string "Failed to generate statistics"
// @Security BearerAuth
// @Router /hr/statistics [get]
func (h *hrHandler) getStatistics(c *gin.Context) {
	stats, err := h.statisticsService.GenerateStatistics(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to generate statistics", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate statistics"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStatisticsResponse(stats))
}

// processBatchPayment godoc
// @Summary Process batch payment
// @Description Transitions every manager-approved claim of the month to PAYMENT_PROCESSED, all-or-nothing
// @Tags hr
// @Accept json
// @Produce json
// @Param batch body dto.BatchPaymentRequest true "Payment month"
// @Success 200 {object} dto.BatchPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "No verified claims for the month"
// @Failure 409 {object} map[string]string "Claims changed while processing"
// @Failure 500 {object} map[string]string "Failed to process batch payment"
// @Security BearerAuth
// @Router /hr/payments/batch [post]
func (h *hrHandler) processBatchPayment(c *gin.Context) {
	var req dto.BatchPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment month is required"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.claimService.ProcessBatchPayment(c.Request.Context(), req.Month, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No verified claims for %s", req.Month)})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Claims changed while processing, no payments were made"})
		default:
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to process batch payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process batch payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBatchPaymentResponse(result))
}

// getInvoiceReport godoc
// @Summary Payment invoice report
// @Description Renders the plain-text payment invoice over manager-approved claims
// @Tags hr
// @Produce plain
// @Param lecturerID query string false "Lecturer filter"
// @Param month query string false "Month filter"
// @Success 200 {string} string
// @Failure 404 {object} map[string]string "Lecturer not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /hr/reports/invoice [get]
func (h *hrHandler) getInvoiceReport(c *gin.Context) {
	var lecturerID, month *string
	if v := c.Query("lecturerID"); v != "" {
		lecturerID = &v
	}
	if v := c.Query("month"); v != "" {
		month = &v
	}

	report, err := h.reportService.GenerateInvoiceReport(c.Request.Context(), lecturerID, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lecturer not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to generate invoice report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.String(http.StatusOK, report)
}

// getPaymentSummary godoc
// @Summary Monthly payment summary
// @Description Renders the plain-text monthly payment summary
// @Tags hr
// @Produce plain
// @Param month query string true "Month"
// @Success 200 {string} string
// @Failure 400 {object} map[string]string "Month missing"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /hr/reports/summary [get]
func (h *hrHandler) getPaymentSummary(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'month' is required"})
		return
	}

	report, err := h.reportService.GeneratePaymentSummary(c.Request.Context(), month)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to generate payment summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.String(http.StatusOK, report)
}

// exportCSV godoc
// @Summary CSV export
// @Description Exports the claims, lecturers or financial report as CSV
// @Tags hr
// @Produce text/csv
// @Param type query string true "Report type" Enums(claims, lecturers, financial)
// @Success 200 {string} string
// @Failure 400 {object} map[string]string "Unknown report type"
// @Failure 500 {object} map[string]string "Failed to export report"
// @Security BearerAuth
// @Router /hr/reports/export [get]
func (h *hrHandler) exportCSV(c *gin.Context) {
	reportType := c.Query("type")

	data, err := h.reportService.ExportCSV(c.Request.Context(), reportType)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to export CSV", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_report.csv", reportType))
	c.Data(http.StatusOK, "text/csv", data)
}

// exportPaymentXLSX godoc
// @Summary Excel payment export
// @Description Exports the month's manager-approved claims as an Excel workbook
// @Tags hr
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param month query string true "Month"
// @Success 200 {string} string
// @Failure 400 {object} map[string]string "Month missing"
// @Failure 500 {object} map[string]string "Failed to export report"
// @Security BearerAuth
// @Router /hr/reports/payments.xlsx [get]
func (h *hrHandler) exportPaymentXLSX(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'month' is required"})
		return
	}

	data, err := h.reportService.ExportPaymentReportXLSX(c.Request.Context(), month)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to export payment workbook", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=payments_%s.xlsx", month))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// getLecturerPerformance godoc
// @Summary Lecturer performance report
// @Description Summarises one lecturer's claim history
// @Tags hr
// @Produce json
// @Param lecturerID path string true "Lecturer ID"
// @Success 200 {object} dto.LecturerPerformanceResponse
// @Failure 404 {object} map[string]string "Lecturer not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /hr/reports/performance/{lecturerID} [get]
func (h *hrHandler) getLecturerPerformance(c *gin.Context) {
	report, err := h.reportService.GenerateLecturerPerformanceReport(c.Request.Context(), c.Param("lecturerID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lecturer not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to generate performance report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLecturerPerformanceResponse(report))
}

// getMonthlyFinancial godoc
// @Summary Monthly financial report
// @Description Summarises one month's financial position
// @Tags hr
// @Produce json
// @Param month query string true "Month"
// @Success 200 {object} dto.MonthlyFinancialResponse
// @Failure 400 {object} map[string]string "Month missing"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /hr/reports/financial [get]
func (h *hrHandler) getMonthlyFinancial(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'month' is required"})
		return
	}

	report, err := h.reportService.GenerateMonthlyFinancialReport(c.Request.Context(), month)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to generate monthly financial report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlyFinancialResponse(report))
}
