package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cmcs-dev/cmcs_backend/internal/apperrors"
	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portsrepo "github.com/cmcs-dev/cmcs_backend/internal/core/ports/repositories"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// reportService renders HR reporting surfaces from claim and lecturer data.
type reportService struct {
	claimRepo    portsrepo.ClaimReader
	lecturerRepo portsrepo.LecturerReader
}

// NewReportService creates a new report service.
func NewReportService(claimRepo portsrepo.ClaimReader, lecturerRepo portsrepo.LecturerReader) portssvc.ReportSvcFacade {
	return &reportService{
		claimRepo:    claimRepo,
		lecturerRepo: lecturerRepo,
	}
}

// Ensure reportService implements the portssvc.ReportSvcFacade interface
var _ portssvc.ReportSvcFacade = (*reportService)(nil)

const reportTimeFormat = "2006-01-02 15:04:05"

func lecturerName(c *domain.Claim) string {
	if c.Lecturer != nil {
		return c.Lecturer.FullName
	}
	return "Unknown"
}

// GenerateInvoiceReport renders the plain-text payment invoice over
// manager-approved claims, optionally filtered by lecturer or month.
func (s *reportService) GenerateInvoiceReport(ctx context.Context, lecturerID *string, month *string) (string, error) {
	claims, err := s.claimRepo.FindClaimsByStatus(ctx, []domain.ClaimStatus{domain.StatusApprovedByManager})
	if err != nil {
		return "", err
	}

	filtered := make([]domain.Claim, 0, len(claims))
	for _, c := range claims {
		if lecturerID != nil && *lecturerID != "" && c.LecturerID != *lecturerID {
			continue
		}
		if month != nil && *month != "" && c.Month != *month {
			continue
		}
		filtered = append(filtered, c)
	}

	var b strings.Builder
	rule := strings.Repeat("=", 80)
	b.WriteString(rule + "\n")
	b.WriteString("PAYMENT INVOICE REPORT\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n", time.Now().Format(reportTimeFormat)))
	b.WriteString(rule + "\n\n")

	if lecturerID != nil && *lecturerID != "" {
		lecturer, err := s.lecturerRepo.FindLecturerByID(ctx, *lecturerID)
		if err != nil {
			return "", err
		}
		b.WriteString(fmt.Sprintf("Lecturer: %s\n", lecturer.FullName))
		b.WriteString(fmt.Sprintf("Email: %s\n\n", lecturer.Email))
	}
	if month != nil && *month != "" {
		b.WriteString(fmt.Sprintf("Month: %s\n\n", *month))
	}

	b.WriteString(fmt.Sprintf("%-12s %-25s %-15s %-10s %-15s %-15s\n", "Claim ID", "Lecturer", "Month", "Hours", "Rate", "Total"))
	b.WriteString(strings.Repeat("-", 90) + "\n")

	grandTotal := decimal.Zero
	for i := range filtered {
		c := &filtered[i]
		b.WriteString(fmt.Sprintf("#%-11s %-25s %-15s %-10d %-15s %-15s\n",
			shortID(c.ClaimID), lecturerName(c), c.Month, c.HoursWorked,
			utils.FormatRand(c.HourlyRate), utils.FormatRand(c.TotalAmount)))
		grandTotal = grandTotal.Add(c.TotalAmount)
	}

	b.WriteString(strings.Repeat("-", 90) + "\n")
	b.WriteString(fmt.Sprintf("%-75s %s\n", "TOTAL PAYMENT DUE:", utils.FormatRand(grandTotal)))
	b.WriteString(rule + "\n")

	return b.String(), nil
}

// shortID abbreviates a UUID for fixed-width report columns.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// GeneratePaymentSummary renders the plain-text monthly payment summary.
func (s *reportService) GeneratePaymentSummary(ctx context.Context, month string) (string, error) {
	claims, err := s.claimRepo.FindClaimsByMonth(ctx, month)
	if err != nil {
		return "", err
	}

	submitted, byCoordinator, byManager, rejected := 0, 0, 0, 0
	totalClaimed, approvedAmount, pendingAmount, rejectedAmount := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for i := range claims {
		c := &claims[i]
		switch c.Status {
		case domain.StatusSubmitted:
			submitted++
		case domain.StatusApprovedByCoordinator:
			byCoordinator++
		case domain.StatusApprovedByManager, domain.StatusPaymentProcessed:
			byManager++
		}
		if c.Status.IsRejected() {
			rejected++
		}

		totalClaimed = totalClaimed.Add(c.TotalAmount)
		switch {
		case c.Status == domain.StatusApprovedByManager || c.Status == domain.StatusPaymentProcessed:
			approvedAmount = approvedAmount.Add(c.TotalAmount)
		case c.Status.IsRejected():
			rejectedAmount = rejectedAmount.Add(c.TotalAmount)
		default:
			pendingAmount = pendingAmount.Add(c.TotalAmount)
		}
	}

	var b strings.Builder
	rule := strings.Repeat("=", 80)
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("MONTHLY PAYMENT SUMMARY - %s\n", strings.ToUpper(month)))
	b.WriteString(fmt.Sprintf("Generated: %s\n", time.Now().Format(reportTimeFormat)))
	b.WriteString(rule + "\n\n")

	b.WriteString("CLAIM STATUS BREAKDOWN:\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	b.WriteString(fmt.Sprintf("Submitted/Pending:        %-5d claims\n", submitted))
	b.WriteString(fmt.Sprintf("Approved by Coordinator:  %-5d claims\n", byCoordinator))
	b.WriteString(fmt.Sprintf("Approved by Manager:      %-5d claims\n", byManager))
	b.WriteString(fmt.Sprintf("Rejected:                 %-5d claims\n", rejected))
	b.WriteString(fmt.Sprintf("TOTAL:                    %-5d claims\n\n", len(claims)))

	b.WriteString("FINANCIAL SUMMARY:\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	b.WriteString(fmt.Sprintf("Total Claimed:            %15s\n", utils.FormatRand(totalClaimed)))
	b.WriteString(fmt.Sprintf("Approved for Payment:     %15s\n", utils.FormatRand(approvedAmount)))
	b.WriteString(fmt.Sprintf("Pending Approval:         %15s\n", utils.FormatRand(pendingAmount)))
	b.WriteString(fmt.Sprintf("Rejected Amount:          %15s\n\n", utils.FormatRand(rejectedAmount)))

	b.WriteString("PAYMENT BY LECTURER:\n")
	b.WriteString(strings.Repeat("-", 70) + "\n")
	b.WriteString(fmt.Sprintf("%-30s %-10s %-15s %-15s\n", "Lecturer", "Claims", "Total Hours", "Amount"))
	b.WriteString(strings.Repeat("-", 70) + "\n")

	type lecturerTotals struct {
		name   string
		claims int
		hours  int
		amount decimal.Decimal
	}
	groups := map[string]*lecturerTotals{}
	for i := range claims {
		c := &claims[i]
		if c.Status != domain.StatusApprovedByManager && c.Status != domain.StatusPaymentProcessed {
			continue
		}
		name := lecturerName(c)
		g, ok := groups[name]
		if !ok {
			g = &lecturerTotals{name: name, amount: decimal.Zero}
			groups[name] = g
		}
		g.claims++
		g.hours += c.HoursWorked
		g.amount = g.amount.Add(c.TotalAmount)
	}
	ordered := make([]*lecturerTotals, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].amount.GreaterThan(ordered[j].amount) })
	for _, g := range ordered {
		b.WriteString(fmt.Sprintf("%-30s %-10d %-15d %-15s\n", g.name, g.claims, g.hours, utils.FormatRand(g.amount)))
	}

	b.WriteString(rule + "\n")
	return b.String(), nil
}

// ExportCSV renders the requested report as CSV bytes.
func (s *reportService) ExportCSV(ctx context.Context, reportType string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch strings.ToLower(reportType) {
	case "claims":
		if err := s.writeClaimsCSV(ctx, w); err != nil {
			return nil, err
		}
	case "lecturers":
		if err := s.writeLecturersCSV(ctx, w); err != nil {
			return nil, err
		}
	case "financial":
		if err := s.writeFinancialCSV(ctx, w); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown report type %q", apperrors.ErrValidation, reportType)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *reportService) writeClaimsCSV(ctx context.Context, w *csv.Writer) error {
	claims, err := s.claimRepo.FindAllClaims(ctx)
	if err != nil {
		return err
	}

	if err := w.Write([]string{"Claim ID", "Lecturer", "Email", "Module", "Month", "Hours Worked", "Hourly Rate", "Total Amount", "Status", "Submission Date", "Rejection Reason"}); err != nil {
		return err
	}
	for i := range claims {
		c := &claims[i]
		email := "N/A"
		if c.Lecturer != nil {
			email = c.Lecturer.Email
		}
		reason := "N/A"
		if c.RejectionReason != nil {
			reason = *c.RejectionReason
		}
		record := []string{
			c.ClaimID,
			lecturerName(c),
			email,
			c.ModuleName,
			c.Month,
			strconv.Itoa(c.HoursWorked),
			c.HourlyRate.StringFixed(2),
			c.TotalAmount.StringFixed(2),
			c.Status.Display(),
			c.SubmissionDate.Format("2006-01-02 15:04"),
			reason,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (s *reportService) writeLecturersCSV(ctx context.Context, w *csv.Writer) error {
	lecturers, err := s.lecturerRepo.ListLecturers(ctx, 1000, 0)
	if err != nil {
		return err
	}

	if err := w.Write([]string{"Lecturer ID", "Full Name", "Email", "Module", "Hourly Rate", "Total Claims", "Total Amount Earned", "Average Monthly Hours"}); err != nil {
		return err
	}
	for i := range lecturers {
		l := &lecturers[i]
		claims, err := s.claimRepo.FindClaimsByLecturer(ctx, l.LecturerID)
		if err != nil {
			return err
		}

		earnedCount := 0
		earnedHours := 0
		earned := decimal.Zero
		for j := range claims {
			c := &claims[j]
			if c.Status != domain.StatusApprovedByManager && c.Status != domain.StatusPaymentProcessed {
				continue
			}
			earnedCount++
			earnedHours += c.HoursWorked
			earned = earned.Add(c.TotalAmount)
		}
		avgHours := 0.0
		if earnedCount > 0 {
			avgHours = float64(earnedHours) / float64(earnedCount)
		}

		record := []string{
			l.LecturerID,
			l.FullName,
			l.Email,
			l.ModuleName,
			l.HourlyRate.StringFixed(2),
			strconv.Itoa(earnedCount),
			earned.StringFixed(2),
			fmt.Sprintf("%.2f", avgHours),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (s *reportService) writeFinancialCSV(ctx context.Context, w *csv.Writer) error {
	claims, err := s.claimRepo.FindAllClaims(ctx)
	if err != nil {
		return err
	}

	if err := w.Write([]string{"Month", "Total Claims", "Submitted", "Approved", "Rejected", "Total Amount", "Approved Amount", "Average Claim Value"}); err != nil {
		return err
	}

	byMonth := map[string][]domain.Claim{}
	for _, c := range claims {
		byMonth[c.Month] = append(byMonth[c.Month], c)
	}
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	for _, m := range months {
		monthClaims := byMonth[m]
		submitted, approved, rejected := 0, 0, 0
		total, approvedAmount := decimal.Zero, decimal.Zero
		for i := range monthClaims {
			c := &monthClaims[i]
			if c.Status == domain.StatusSubmitted {
				submitted++
			}
			if c.Status.IsApproved() {
				approved++
			}
			if c.Status.IsRejected() {
				rejected++
			}
			total = total.Add(c.TotalAmount)
			if c.Status == domain.StatusApprovedByManager || c.Status == domain.StatusPaymentProcessed {
				approvedAmount = approvedAmount.Add(c.TotalAmount)
			}
		}
		avg := decimal.Zero
		if len(monthClaims) > 0 {
			avg = total.Div(decimal.NewFromInt(int64(len(monthClaims)))).Round(2)
		}

		record := []string{
			m,
			strconv.Itoa(len(monthClaims)),
			strconv.Itoa(submitted),
			strconv.Itoa(approved),
			strconv.Itoa(rejected),
			total.StringFixed(2),
			approvedAmount.StringFixed(2),
			avg.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// ExportPaymentReportXLSX renders the month's manager-approved claims as an
// Excel workbook with a totals row.
func (s *reportService) ExportPaymentReportXLSX(ctx context.Context, month string) ([]byte, error) {
	claims, err := s.claimRepo.FindClaimsByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payments"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"Claim ID", "Lecturer", "Email", "Module", "Month", "Hours", "Rate", "Total"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	total := decimal.Zero
	for i := range claims {
		c := &claims[i]
		if c.Status != domain.StatusApprovedByManager {
			continue
		}
		email := ""
		if c.Lecturer != nil {
			email = c.Lecturer.Email
		}
		values := []any{
			c.ClaimID,
			lecturerName(c),
			email,
			c.ModuleName,
			c.Month,
			c.HoursWorked,
			c.HourlyRate.InexactFloat64(),
			c.TotalAmount.InexactFloat64(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
		total = total.Add(c.TotalAmount)
		row++
	}

	if err := f.SetCellValue(sheet, fmt.Sprintf("G%d", row), "TOTAL"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("H%d", row), total.InexactFloat64()); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "D", 24); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateLecturerPerformanceReport summarises one lecturer's claim history.
func (s *reportService) GenerateLecturerPerformanceReport(ctx context.Context, lecturerID string) (*domain.LecturerPerformanceReport, error) {
	lecturer, err := s.lecturerRepo.FindLecturerByID(ctx, lecturerID)
	if err != nil {
		return nil, err
	}

	claims, err := s.claimRepo.FindClaimsByLecturer(ctx, lecturerID)
	if err != nil {
		return nil, err
	}

	report := &domain.LecturerPerformanceReport{
		LecturerID:  lecturer.LecturerID,
		FullName:    lecturer.FullName,
		Email:       lecturer.Email,
		TotalClaims: len(claims),
		TotalEarned: decimal.Zero,
		GeneratedAt: time.Now(),
	}

	totalHours := 0
	for i := range claims {
		c := &claims[i]
		if c.Status.IsApproved() {
			report.ApprovedClaims++
		}
		if c.Status.IsRejected() {
			report.RejectedClaims++
		}
		if c.Status == domain.StatusApprovedByManager || c.Status == domain.StatusPaymentProcessed {
			report.TotalHours += c.HoursWorked
			report.TotalEarned = report.TotalEarned.Add(c.TotalAmount)
		}
		totalHours += c.HoursWorked
	}
	if len(claims) > 0 {
		report.AverageHours = float64(totalHours) / float64(len(claims))
	}

	return report, nil
}

// GenerateMonthlyFinancialReport summarises one month's financial position.
func (s *reportService) GenerateMonthlyFinancialReport(ctx context.Context, month string) (*domain.MonthlyFinancialReport, error) {
	claims, err := s.claimRepo.FindClaimsByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	report := &domain.MonthlyFinancialReport{
		Month:         month,
		TotalClaims:   len(claims),
		TotalApproved: decimal.Zero,
		TotalPending:  decimal.Zero,
		TotalRejected: decimal.Zero,
		GeneratedAt:   time.Now(),
	}

	for i := range claims {
		c := &claims[i]
		switch {
		case c.Status == domain.StatusApprovedByManager || c.Status == domain.StatusPaymentProcessed:
			report.ApprovedClaims++
			report.TotalApproved = report.TotalApproved.Add(c.TotalAmount)
		case c.Status.IsRejected():
			report.RejectedClaims++
			report.TotalRejected = report.TotalRejected.Add(c.TotalAmount)
		default:
			report.PendingClaims++
			report.TotalPending = report.TotalPending.Add(c.TotalAmount)
		}
	}

	return report, nil
}
