package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/mfg-tool-dashboard/internal/database"
	"github.com/yukikurage/mfg-tool-dashboard/internal/logger"
	"gorm.io/gorm"
)

// HealthHandler reports whether the service can reach its database.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), h.db); err != nil {
		logger.From(c.Request.Context()).Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
