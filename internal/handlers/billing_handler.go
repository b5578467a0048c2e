package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sidompet/sidompet-api/internal/services"
)

type BillingHandler struct {
	billingService *services.BillingService
}

func NewBillingHandler(billingService *services.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

type PaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

// Pay settles a customer's current cycle in full
func (h *BillingHandler) Pay(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("customer_id"), 10, 32)

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "metode pembayaran wajib diisi"})
		return
	}

	customer, entry, err := h.billingService.RecordPayment(c.Request.Context(), uint(id), req.Method)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer.ToResponse(),
		"entry":    entry.ToResponse(),
	})
}

// RunCycle rolls the whole roster into a new billing month
func (h *BillingHandler) RunCycle(c *gin.Context) {
	count, err := h.billingService.RunBillingCycle(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "siklus tagihan baru dimulai",
		"customers": count,
	})
}

// UnpaidSummary returns the outstanding receivables snapshot
func (h *BillingHandler) UnpaidSummary(c *gin.Context) {
	count, total, err := h.billingService.UnpaidSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unpaid_count": count,
		"total_due":    total,
	})
}
