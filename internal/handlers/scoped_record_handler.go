package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/paymethods-config-backend/internal/scoped"
	"github.com/ArowuTest/paymethods-config-backend/internal/services"
)

// ScopedRecordHandler serves credentials or bank accounts in grouped form
type ScopedRecordHandler struct {
	service services.ScopedRecordService
}

// NewScopedRecordHandler creates a new ScopedRecordHandler
func NewScopedRecordHandler(service services.ScopedRecordService) *ScopedRecordHandler {
	return &ScopedRecordHandler{service: service}
}

// Get handles GET /admin/providers/:code/{credentials,bank-accounts}
func (h *ScopedRecordHandler) Get(c *gin.Context) {
	groups, err := h.service.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": groups})
}

// Replace handles PUT /admin/providers/:code/{credentials,bank-accounts}
func (h *ScopedRecordHandler) Replace(c *gin.Context) {
	var groups []scoped.RecordGroup
	if err := c.ShouldBindJSON(&groups); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	stored, err := h.service.Replace(c.Request.Context(), c.Param("code"), groups)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stored})
}
