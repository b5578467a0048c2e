package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportService renders the monthly report as downloadable CSV or XLSX
type ExportService struct {
	reportSvc *ReportService
}

// NewExportService creates a new export service
func NewExportService(reportSvc *ReportService) *ExportService {
	return &ExportService{reportSvc: reportSvc}
}

// MonthlyCSV writes the monthly buckets as CSV
func (s *ExportService) MonthlyCSV(ctx context.Context) ([]byte, string, error) {
	buckets, err := s.reportSvc.Monthly(ctx)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Monthly Report", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Month", "Income", "Expense", "Profit/Loss"})

	for _, b := range buckets {
		_ = writer.Write([]string{
			b.Label,
			fmt.Sprintf("%.2f", b.TotalIncome),
			fmt.Sprintf("%.2f", b.TotalExpense),
			fmt.Sprintf("%.2f", b.ProfitOrLoss),
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("monthly_report_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// MonthlyXLSX writes the monthly buckets as an Excel workbook
func (s *ExportService) MonthlyXLSX(ctx context.Context) ([]byte, string, error) {
	buckets, err := s.reportSvc.Monthly(ctx)
	if err != nil {
		return nil, "", err
	}

	summary, err := s.reportSvc.Summary(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Monthly Report"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Monthly Report")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	_ = f.SetCellValue(sheet, "A3", "Month")
	_ = f.SetCellValue(sheet, "B3", "Income")
	_ = f.SetCellValue(sheet, "C3", "Expense")
	_ = f.SetCellValue(sheet, "D3", "Profit/Loss")

	row := 4
	for _, b := range buckets {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), b.Label)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), b.TotalIncome)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), b.TotalExpense)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), b.ProfitOrLoss)
		row++
	}

	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total Income")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), summary.TotalIncome)
	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total Expense")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), summary.TotalExpense)
	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Net Balance")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), summary.NetBalance)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("monthly_report_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
