package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/paymethods-config-backend/internal/services"
	"github.com/ArowuTest/paymethods-config-backend/internal/upsert"
)

// FieldHandler handles provider field administration
type FieldHandler struct {
	fieldService services.FieldService
}

// NewFieldHandler creates a new FieldHandler
func NewFieldHandler(fieldService services.FieldService) *FieldHandler {
	return &FieldHandler{fieldService: fieldService}
}

// GetProviderFields handles GET /admin/providers/:code/fields?country=&authority=&currency=
func (h *FieldHandler) GetProviderFields(c *gin.Context) {
	lists, err := h.fieldService.GetProviderFields(c.Request.Context(), c.Param("code"), services.FieldScope{
		Country:   c.Query("country"),
		Authority: c.Query("authority"),
		Currency:  c.Query("currency"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": lists})
}

// UpsertFields handles PUT /admin/providers/:code/methods/:methodId/fields
func (h *FieldHandler) UpsertFields(c *gin.Context) {
	var payload upsert.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	n, err := h.fieldService.UpsertFields(c.Request.Context(), c.Param("code"), c.Param("methodId"), &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fields": n})
}
