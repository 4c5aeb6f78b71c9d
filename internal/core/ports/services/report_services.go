package services

import (
	"context"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
)

// ReportSvcFacade produces the HR reporting surfaces. Reports consume claim
// and statistics data; they never mutate it.
type ReportSvcFacade interface {
	// GenerateInvoiceReport renders the plain-text payment invoice report
	// over manager-approved claims, optionally filtered by lecturer or month.
	GenerateInvoiceReport(ctx context.Context, lecturerID *string, month *string) (string, error)

	// GeneratePaymentSummary renders the plain-text monthly payment summary.
	GeneratePaymentSummary(ctx context.Context, month string) (string, error)

	// ExportCSV renders a CSV export for the given report type
	// ("claims", "lecturers" or "financial").
	ExportCSV(ctx context.Context, reportType string) ([]byte, error)

	// ExportPaymentReportXLSX renders the month's manager-approved claims as
	// an Excel workbook with a totals row.
	ExportPaymentReportXLSX(ctx context.Context, month string) ([]byte, error)

	// GenerateLecturerPerformanceReport summarises one lecturer's history.
	GenerateLecturerPerformanceReport(ctx context.Context, lecturerID string) (*domain.LecturerPerformanceReport, error)

	// GenerateMonthlyFinancialReport summarises one month's finances.
	GenerateMonthlyFinancialReport(ctx context.Context, month string) (*domain.MonthlyFinancialReport, error)
}
