package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/services"
)

type ReserveHandler struct {
	reserveService *services.ReserveService
}

func NewReserveHandler(reserveService *services.ReserveService) *ReserveHandler {
	return &ReserveHandler{reserveService: reserveService}
}

type TransferRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// Show returns the current reserve balance
func (h *ReserveHandler) Show(c *gin.Context) {
	balance, err := h.reserveService.Balance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// History returns the reserve transfer trail from the ledger
func (h *ReserveHandler) History(c *gin.Context) {
	entries, err := h.reserveService.History(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.FinanceEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, e.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"entries": responses})
}

// Deposit moves money from the operating balance into the reserve
func (h *ReserveHandler) Deposit(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jumlah wajib diisi"})
		return
	}

	balance, err := h.reserveService.Deposit(c.Request.Context(), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// Withdraw moves money from the reserve back into the operating balance
func (h *ReserveHandler) Withdraw(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jumlah wajib diisi"})
		return
	}

	balance, err := h.reserveService.Withdraw(c.Request.Context(), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
