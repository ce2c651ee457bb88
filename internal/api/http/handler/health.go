package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/lostfound-server/internal/logger"
	"github.com/dtroode/lostfound-server/internal/model"
)

// Health reports whether the item backend can serve requests.
type Health struct {
	pinger model.Pinger
	logger *logger.Logger
}

func NewHealth(pinger model.Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

func (h *Health) Check(c *gin.Context) {
	if err := h.pinger.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("Health handler: backend unavailable",
			"error", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
