package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidompet/sidompet-api/internal/services"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create generates an invoice PDF and downloads it
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input services.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.invoiceService.Generate(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", invoice.Number))
	c.Data(http.StatusOK, "application/pdf", invoice.PDF)
}

// MessageLink generates the invoice and returns a wa.me link carrying its
// summary instead of the PDF itself.
func (h *InvoiceHandler) MessageLink(c *gin.Context) {
	var input services.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.invoiceService.Generate(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	link, err := h.invoiceService.MessageLink(c.Request.Context(), invoice)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoice_number": invoice.Number,
		"grand_total":    invoice.GrandTotal,
		"link":           link,
	})
}
