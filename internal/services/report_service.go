package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/repository"
)

// ReportService derives monthly and category-bucketed summaries from the
// ledger. All aggregation is a pure read-side projection: nothing here
// mutates state.
type ReportService struct {
	financeRepo repository.FinanceRepository
	companyRepo repository.CompanyRepository
}

// NewReportService creates a new report service
func NewReportService(financeRepo repository.FinanceRepository, companyRepo repository.CompanyRepository) *ReportService {
	return &ReportService{
		financeRepo: financeRepo,
		companyRepo: companyRepo,
	}
}

// MonthlyBucket is one month's income/expense totals
type MonthlyBucket struct {
	Month        string  `json:"month"` // "2024-01", used for sorting
	Label        string  `json:"label"` // "January 2024"
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	ProfitOrLoss float64 `json:"profit_or_loss"`
}

// CategoryPoint is one calendar date in the category chart series
type CategoryPoint struct {
	Date       string             `json:"date"`
	Categories map[string]float64 `json:"categories"`
	Income     float64            `json:"income"`
	Expense    float64            `json:"expense"`
	Balance    float64            `json:"balance"` // running cumulative balance
}

// LedgerSummary holds the dashboard summary card totals
type LedgerSummary struct {
	TotalIncome    float64 `json:"total_income"`
	TotalExpense   float64 `json:"total_expense"`
	NetBalance     float64 `json:"net_balance"`
	CashIncome     float64 `json:"cash_income"`
	TransferIncome float64 `json:"transfer_income"`
	EntryCount     int     `json:"entry_count"`
}

// Sub-category labels produced by the description classifier
const (
	CategorySubscriptionRevenue = "Subscription Revenue"
	CategoryInstallationRevenue = "Installation Revenue"
	CategoryOtherIncome         = "Other Income"
	CategoryCapitalExpenditure  = "Capital Expenditure"
	CategoryOperatingCost       = "Operating Cost"
	CategoryProfitDistribution  = "Profit Distribution"
	CategoryOtherExpense        = "Other Expense"
)

// Monthly returns income/expense totals grouped by calendar month, most
// recent month first.
func (s *ReportService) Monthly(ctx context.Context) ([]MonthlyBucket, error) {
	entries, err := s.financeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return aggregateMonthly(entries), nil
}

// CategorySeries returns the per-date classified series with a running
// cumulative balance.
func (s *ReportService) CategorySeries(ctx context.Context) ([]CategoryPoint, error) {
	entries, err := s.financeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildCategorySeries(entries), nil
}

// Summary returns the dashboard card totals
func (s *ReportService) Summary(ctx context.Context) (*LedgerSummary, error) {
	entries, err := s.financeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	summary := summarize(entries)
	return &summary, nil
}

// aggregateMonthly groups entries by (year, month) and sums income and
// expense per bucket, sorted descending so the current month comes first.
func aggregateMonthly(entries []models.FinanceEntry) []MonthlyBucket {
	buckets := make(map[string]*MonthlyBucket)

	for i := range entries {
		e := &entries[i]
		key := e.Date.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &MonthlyBucket{
				Month: key,
				Label: e.Date.Format("January 2006"),
			}
			buckets[key] = b
		}
		if e.IsIncome() {
			b.TotalIncome += e.Amount
		} else {
			b.TotalExpense += e.Amount
		}
	}

	result := make([]MonthlyBucket, 0, len(buckets))
	for _, b := range buckets {
		b.ProfitOrLoss = b.TotalIncome - b.TotalExpense
		result = append(result, *b)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Month > result[j].Month
	})

	return result
}

// Classify maps a ledger entry to a reporting sub-category using a keyword
// match on the description. Matching is case-insensitive substring,
// first-match-wins in the order written here.
func Classify(e *models.FinanceEntry) string {
	desc := strings.ToLower(e.Description)

	if e.IsIncome() {
		switch {
		case strings.Contains(desc, "subscription"):
			return CategorySubscriptionRevenue
		case strings.Contains(desc, "installation"):
			return CategoryInstallationRevenue
		default:
			return CategoryOtherIncome
		}
	}

	switch {
	case strings.Contains(desc, "router"), strings.Contains(desc, "equipment"):
		return CategoryCapitalExpenditure
	case strings.Contains(desc, "electricity"), strings.Contains(desc, "salary"):
		return CategoryOperatingCost
	case strings.Contains(desc, "profit-sharing"):
		return CategoryProfitDistribution
	default:
		return CategoryOtherExpense
	}
}

// buildCategorySeries buckets entries per calendar date ascending. Dates with
// no entries produce no row. The running balance at the final date equals the
// ledger's net balance.
func buildCategorySeries(entries []models.FinanceEntry) []CategoryPoint {
	points := make(map[string]*CategoryPoint)

	for i := range entries {
		e := &entries[i]
		key := e.Date.Format("2006-01-02")
		p, ok := points[key]
		if !ok {
			p = &CategoryPoint{
				Date:       key,
				Categories: make(map[string]float64),
			}
			points[key] = p
		}
		p.Categories[Classify(e)] += e.Amount
		if e.IsIncome() {
			p.Income += e.Amount
		} else {
			p.Expense += e.Amount
		}
	}

	result := make([]CategoryPoint, 0, len(points))
	for _, p := range points {
		result = append(result, *p)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})

	var balance float64
	for i := range result {
		balance += result[i].Income - result[i].Expense
		result[i].Balance = balance
	}

	return result
}

// summarize computes the dashboard totals, including the cash/transfer
// income split shown on the summary cards.
func summarize(entries []models.FinanceEntry) LedgerSummary {
	var s LedgerSummary
	s.EntryCount = len(entries)

	for i := range entries {
		e := &entries[i]
		if e.IsIncome() {
			s.TotalIncome += e.Amount
			switch e.Method {
			case models.MethodCash:
				s.CashIncome += e.Amount
			case models.MethodTransfer:
				s.TransferIncome += e.Amount
			}
		} else {
			s.TotalExpense += e.Amount
		}
	}

	s.NetBalance = s.TotalIncome - s.TotalExpense
	return s
}

// MonthlyReportPDF renders the monthly report as a PDF via an HTML template
func (s *ReportService) MonthlyReportPDF(ctx context.Context) (*bytes.Buffer, error) {
	buckets, err := s.Monthly(ctx)
	if err != nil {
		return nil, err
	}

	info, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	data := struct {
		Company     *models.CompanyInfo
		GeneratedAt string
		Buckets     []MonthlyBucket
	}{
		Company:     info,
		GeneratedAt: time.Now().Format("02 January 2006 15:04"),
		Buckets:     buckets,
	}

	return s.generatePDF("monthly_report.html", data)
}

// generatePDF renders an HTML template and converts it with wkhtmltopdf
func (s *ReportService) generatePDF(templateName string, data interface{}) (*bytes.Buffer, error) {
	// Try path relative to project root (Prod)
	tmplPath := fmt.Sprintf("internal/services/templates/reports/%s", templateName)
	if _, err := os.Stat(tmplPath); os.IsNotExist(err) {
		// Try path relative to package (Test)
		tmplPath = fmt.Sprintf("templates/reports/%s", templateName)
	}

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s (path: %s): %w", templateName, tmplPath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(buf.Bytes()))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer(), nil
}
