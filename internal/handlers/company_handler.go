package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidompet/sidompet-api/internal/services"
)

type CompanyHandler struct {
	companyService *services.CompanyService
}

func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Show returns the company settings
func (h *CompanyHandler) Show(c *gin.Context) {
	info, err := h.companyService.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": info})
}

// Update overwrites the company settings
func (h *CompanyHandler) Update(c *gin.Context) {
	var input services.CompanyInput
	if err := BindNestedOrFlat(c, "company", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := h.companyService.Update(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": info})
}
