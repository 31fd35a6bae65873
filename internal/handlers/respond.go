package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ArowuTest/paymethods-config-backend/internal/apperrors"
	"github.com/ArowuTest/paymethods-config-backend/internal/logger"
)

// respondError writes err as {"error": message, "meta": {...}}. Untyped errors
// are logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		requestID, _ := c.Get("RequestID")
		logger.L().WithError(err).WithFields(logrus.Fields{
			"path":       c.Request.URL.Path,
			"request_id": requestID,
		}).Error("Request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{"error": err.Error()}
	if appErr, ok := apperrors.As(err); ok && len(appErr.Meta) > 0 {
		body["meta"] = appErr.Meta
	}
	c.JSON(status, body)
}
