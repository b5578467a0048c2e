package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/repository"
	"github.com/sidompet/sidompet-api/internal/storage"
	"github.com/sidompet/sidompet-api/pkg/logger"
	"gorm.io/gorm"
)

// InvoiceService builds customer invoices as PDF documents and the matching
// WhatsApp message used to send them.
type InvoiceService struct {
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	whatsappSvc  *WhatsAppService
	storage      *storage.LocalStorage
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(customerRepo repository.CustomerRepository, companyRepo repository.CompanyRepository, whatsappSvc *WhatsAppService, store *storage.LocalStorage) *InvoiceService {
	return &InvoiceService{
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		whatsappSvc:  whatsappSvc,
		storage:      store,
	}
}

// InvoiceItem is a single billed line
type InvoiceItem struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// InvoiceInput describes the invoice to generate
type InvoiceInput struct {
	CustomerID uint          `json:"customer_id" binding:"required"`
	Items      []InvoiceItem `json:"items" binding:"required"`
	Notes      string        `json:"notes"`
}

// Invoice is a generated invoice with its rendered PDF
type Invoice struct {
	Number     string
	IssuedAt   time.Time
	Customer   *models.Customer
	GrandTotal float64
	PDF        []byte
}

// Generate renders a PDF invoice for a customer
func (s *InvoiceService) Generate(ctx context.Context, in *InvoiceInput) (*Invoice, error) {
	if len(in.Items) == 0 {
		return nil, errors.New("invoice needs at least one item")
	}
	for i := range in.Items {
		if in.Items[i].Quantity <= 0 {
			in.Items[i].Quantity = 1
		}
		if in.Items[i].Price < 0 {
			return nil, errors.New("item price cannot be negative")
		}
	}

	customer, err := s.customerRepo.FindByID(ctx, in.CustomerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	company, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	number := fmt.Sprintf("INV-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]),
	)

	var grandTotal float64
	for _, item := range in.Items {
		grandTotal += float64(item.Quantity) * item.Price
	}

	pdf, err := renderInvoicePDF(company, customer, number, in.Items, grandTotal, in.Notes)
	if err != nil {
		return nil, err
	}

	if s.storage != nil {
		if _, err := s.storage.SaveBytes(pdf, number+".pdf", "invoices"); err != nil {
			logger.Warn("failed to archive invoice", "number", number, "error", err)
		}
	}

	return &Invoice{
		Number:     number,
		IssuedAt:   time.Now(),
		Customer:   customer,
		GrandTotal: grandTotal,
		PDF:        pdf,
	}, nil
}

// MessageLink returns a wa.me link carrying the invoice summary so the
// operator can forward it from their own WhatsApp.
func (s *InvoiceService) MessageLink(ctx context.Context, inv *Invoice) (string, error) {
	company, err := s.companyRepo.Get(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("*Invoice Pembayaran*\n\n")
	fmt.Fprintf(&b, "Yth. Bpk/Ibu %s,\n\n", inv.Customer.Name)
	fmt.Fprintf(&b, "No. Invoice: %s\n", inv.Number)
	fmt.Fprintf(&b, "Tanggal: %s\n", inv.IssuedAt.Format("02-01-2006"))
	fmt.Fprintf(&b, "Total Tagihan: *%s*\n\n", FormatRupiah(inv.GrandTotal))

	if company.HasBankAccount() {
		fmt.Fprintf(&b, "Pembayaran dapat ditransfer ke:\n%s %s a.n. %s\n\n",
			company.BankName, company.AccountNumber, company.AccountHolder)
	} else {
		b.WriteString("Pembayaran dapat dilakukan melalui transfer atau tunai.\n\n")
	}

	fmt.Fprintf(&b, "Terima kasih,\n%s", company.Name)

	return s.whatsappSvc.DeepLink(inv.Customer.Phone, b.String()), nil
}

func renderInvoicePDF(company *models.CompanyInfo, customer *models.Customer, number string, items []InvoiceItem, grandTotal float64, notes string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Company header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 8, company.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	if company.Address != "" {
		pdf.CellFormat(0, 5, company.Address, "", 1, "L", false, 0, "")
	}
	if company.Phone != "" {
		pdf.CellFormat(0, 5, "Telp: "+company.Phone, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
	pdf.SetDrawColor(60, 60, 60)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(6)

	// Invoice meta
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "INVOICE", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "No: "+number, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Tanggal: "+time.Now().Format("02-01-2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Recipient block
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Kepada Yth:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, customer.Name, "", 1, "L", false, 0, "")
	if customer.Address != "" {
		pdf.CellFormat(0, 5, customer.Address, "", 1, "L", false, 0, "")
	}
	if customer.Phone != "" {
		pdf.CellFormat(0, 5, customer.Phone, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Items table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(90, 8, "Deskripsi", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Harga", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range items {
		lineTotal := float64(item.Quantity) * item.Price
		pdf.CellFormat(90, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, FormatRupiah(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, FormatRupiah(lineTotal), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(145, 8, "Grand Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, FormatRupiah(grandTotal), "1", 1, "R", true, 0, "")
	pdf.Ln(4)

	// Amount in words
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, "Terbilang: "+NumberToWords(grandTotal), "", "L", false)
	pdf.Ln(2)

	if company.HasBankAccount() {
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 5, fmt.Sprintf("Pembayaran: %s %s a.n. %s",
			company.BankName, company.AccountNumber, company.AccountHolder), "", 1, "L", false, 0, "")
	}

	if notes != "" {
		pdf.Ln(2)
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, "Catatan: "+notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}

	return buf.Bytes(), nil
}
