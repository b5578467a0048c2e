package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/repository"
	"github.com/sidompet/sidompet-api/internal/services"
)

type CustomerHandler struct {
	customerService *services.CustomerService
	whatsappService *services.WhatsAppService
}

func NewCustomerHandler(customerService *services.CustomerService, whatsappService *services.WhatsAppService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		whatsappService: whatsappService,
	}
}

// Index returns a filtered, paginated page of the roster
func (h *CustomerHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["subscription_type"] = c.Query("subscription_type")
	query.Filters["status"] = c.Query("status")

	customers, total, err := h.customerService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		responses = append(responses, cust.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// Show returns a single customer
func (h *CustomerHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("customer_id"), 10, 32)
	customer, err := h.customerService.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer.ToResponse()})
}

// Create registers a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var input services.CustomerInput
	if err := BindNestedOrFlat(c, "customer", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"customer": customer.ToResponse()})
}

// Update edits a customer's subscription details
func (h *CustomerHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("customer_id"), 10, 32)

	var input services.CustomerInput
	if err := BindNestedOrFlat(c, "customer", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), uint(id), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer.ToResponse()})
}

// Destroy removes a customer from the roster
func (h *CustomerHandler) Destroy(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("customer_id"), 10, 32)
	if err := h.customerService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pelanggan dihapus"})
}

// ReminderLink returns a wa.me link with a prefilled billing reminder for the
// customer. The operator opens the link and sends from their own WhatsApp.
func (h *CustomerHandler) ReminderLink(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("customer_id"), 10, 32)

	customer, err := h.customerService.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	link, err := h.whatsappService.BillingReminderLink(c.Request.Context(), customer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}
