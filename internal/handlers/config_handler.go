package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/paymethods-config-backend/internal/services"
)

// ConfigHandler serves the checkout configuration
type ConfigHandler struct {
	configService services.ConfigService
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(configService services.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

// GetConfigs handles GET /configs?country=&authority=&currency=
func (h *ConfigHandler) GetConfigs(c *gin.Context) {
	configs, err := h.configService.GetConfigs(c.Request.Context(), services.ConfigQuery{
		Country:   c.Query("country"),
		Authority: c.Query("authority"),
		Currency:  c.Query("currency"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, configs)
}
