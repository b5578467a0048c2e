package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidompet/sidompet-api/internal/services"
)

type ProfitSharingHandler struct {
	profitService *services.ProfitSharingService
}

func NewProfitSharingHandler(profitService *services.ProfitSharingService) *ProfitSharingHandler {
	return &ProfitSharingHandler{profitService: profitService}
}

// Index returns the current distribution snapshot
func (h *ProfitSharingHandler) Index(c *gin.Context) {
	shares, err := h.profitService.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

type DistributeRequest struct {
	Members []string `json:"members" binding:"required"`
}

// Distribute splits the current net balance evenly across the named members
func (h *ProfitSharingHandler) Distribute(c *gin.Context) {
	var req DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "daftar anggota wajib diisi"})
		return
	}

	shares, err := h.profitService.Distribute(c.Request.Context(), req.Members)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shares": shares})
}
