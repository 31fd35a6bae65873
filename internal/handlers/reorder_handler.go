package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/services"
)

// ReorderRequest is the body of a method reorder
type ReorderRequest struct {
	Type      models.TransactionType `json:"type" binding:"required"`
	MethodIDs []string               `json:"methodIds" binding:"required"`
}

// ReorderHandler handles method ordering
type ReorderHandler struct {
	reorderService services.ReorderService
}

// NewReorderHandler creates a new ReorderHandler
func NewReorderHandler(reorderService services.ReorderService) *ReorderHandler {
	return &ReorderHandler{reorderService: reorderService}
}

// Reorder handles PUT /admin/providers/:code/method-order
func (h *ReorderHandler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.reorderService.Reorder(c.Request.Context(), c.Param("code"), req.Type, req.MethodIDs); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
