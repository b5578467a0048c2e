package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/services"
)

type FinanceHandler struct {
	financeService *services.FinanceService
	reportService  *services.ReportService
}

func NewFinanceHandler(financeService *services.FinanceService, reportService *services.ReportService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
		reportService:  reportService,
	}
}

// Index lists ledger entries, optionally restricted by start_date/end_date
func (h *FinanceHandler) Index(c *gin.Context) {
	entries, err := h.financeService.List(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
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

// Create appends a manual entry to the ledger
func (h *FinanceHandler) Create(c *gin.Context) {
	var input services.EntryInput
	if err := BindNestedOrFlat(c, "entry", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.financeService.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry.ToResponse()})
}

// Update replaces an existing entry's fields
func (h *FinanceHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("entry_id"), 10, 32)

	var input services.EntryInput
	if err := BindNestedOrFlat(c, "entry", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.financeService.Update(c.Request.Context(), uint(id), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry.ToResponse()})
}

// Destroy deletes a ledger entry
func (h *FinanceHandler) Destroy(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("entry_id"), 10, 32)
	if err := h.financeService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "catatan dihapus"})
}

// Summary returns the dashboard card totals
func (h *FinanceHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
