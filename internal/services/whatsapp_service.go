package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/repository"
	"github.com/sidompet/sidompet-api/pkg/logger"
)

// WhatsAppService sends payment confirmations through the configured gateway
// and builds wa.me deep links for manual reminders.
type WhatsAppService struct {
	companyRepo repository.CompanyRepository
	client      *http.Client
	countryCode string
}

// NewWhatsAppService creates a new WhatsApp service
func NewWhatsAppService(companyRepo repository.CompanyRepository, countryCode string) *WhatsAppService {
	return &WhatsAppService{
		companyRepo: companyRepo,
		client:      &http.Client{Timeout: 10 * time.Second},
		countryCode: countryCode,
	}
}

// NormalizePhone converts a local phone number into country-code-prefixed
// digits: a leading "0" becomes the country code, then every non-digit is
// stripped.
func (s *WhatsAppService) NormalizePhone(phone string) string {
	formatted := strings.TrimSpace(phone)
	if strings.HasPrefix(formatted, "0") {
		formatted = s.countryCode + formatted[1:]
	}
	var b strings.Builder
	for _, r := range formatted {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// gatewayRequest is the JSON body expected by the gateway
type gatewayRequest struct {
	Token string `json:"token"`
	To    string `json:"to"`
	Body  string `json:"body"`
}

// SendPaymentConfirmation posts a payment receipt message to the gateway.
// Skipped silently when the gateway is not configured. Any failure is logged
// and swallowed: a lost notification never affects the recorded payment.
func (s *WhatsAppService) SendPaymentConfirmation(ctx context.Context, customer *models.Customer, amount float64) error {
	info, err := s.companyRepo.Get(ctx)
	if err != nil {
		logger.Error("Failed to load company info for notification", "error", err)
		return nil
	}

	if !info.HasGateway() {
		logger.Debug("WhatsApp gateway not configured, skipping payment confirmation")
		return nil
	}

	message := fmt.Sprintf(
		"Yth. Bpk/Ibu %s,\n\nTerima kasih. Pembayaran Anda sebesar *%s* telah berhasil kami terima.\n\nSalam,\n%s",
		customer.Name, FormatRupiah(amount), info.Name,
	)

	payload, err := json.Marshal(gatewayRequest{
		Token: info.WAGatewayToken,
		To:    s.NormalizePhone(customer.Phone),
		Body:  message,
	})
	if err != nil {
		logger.Error("Failed to encode gateway payload", "error", err)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, info.WAGatewayURL, bytes.NewReader(payload))
	if err != nil {
		logger.Error("Failed to build gateway request", "error", err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("WhatsApp gateway request failed", "error", err, "customer", customer.Name)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("WhatsApp gateway returned non-2xx status",
			"status", resp.StatusCode, "customer", customer.Name)
		return nil
	}

	logger.Info("Payment confirmation sent", "customer", customer.Name)
	return nil
}

// BillingReminderLink builds a wa.me deep link with a prefilled billing
// reminder for an unpaid customer. Bank details are included when configured.
func (s *WhatsAppService) BillingReminderLink(ctx context.Context, customer *models.Customer) (string, error) {
	info, err := s.companyRepo.Get(ctx)
	if err != nil {
		return "", err
	}

	paymentInfo := "Pembayaran dapat dilakukan melalui transfer atau tunai."
	if info.HasBankAccount() {
		paymentInfo = fmt.Sprintf(
			"Mohon untuk segera melakukan pembayaran agar layanan Anda tetap berjalan lancar. Pembayaran dapat dilakukan melalui transfer ke rekening berikut:\n\n*Bank:* %s\n*No. Rekening:* %s\n*Atas Nama:* %s",
			info.BankName, info.AccountNumber, info.AccountHolder,
		)
	}

	message := fmt.Sprintf(
		"*Pemberitahuan Tagihan Internet*\n\nYth. Bpk/Ibu %s,\n\nKami ingin mengingatkan mengenai tagihan layanan internet Anda untuk periode ini.\n\nRincian Tagihan:\n- Jenis Langganan: %s\n- Total Tagihan: *%s*\n\n%s\n\nTerima kasih atas perhatian dan kerjasamanya.\n\nHormat kami,\n%s",
		customer.Name, customer.SubscriptionType, FormatRupiah(customer.TotalDue()), paymentInfo, info.Name,
	)

	return s.DeepLink(customer.Phone, message), nil
}

// DeepLink builds a wa.me URL for a phone number and message
func (s *WhatsAppService) DeepLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.NormalizePhone(phone), url.QueryEscape(message))
}

// FormatRupiah renders an amount the way Indonesian invoices expect:
// "Rp 1.500.000" with dots as thousand separators.
func FormatRupiah(amount float64) string {
	n := int64(amount)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	return "Rp " + sign + strings.Join(parts, ".")
}
