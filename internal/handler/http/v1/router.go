package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	protected := api.Group("")
	if len(h.cfg.APIKeys) > 0 {
		protected.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	} else {
		h.logger.Warn("API_KEYS is empty, API authentication is disabled")
	}

	// Маршруты мониторинга пользователя
	users := protected.Group("/users/:user")
	{
		users.POST("/tracking/start", h.startTracking)
		users.POST("/tracking/stop", h.stopTracking)
		users.POST("/fixes", h.observePosition)
		users.POST("/distress", h.submitDistress)
		users.POST("/confirm", h.confirm)
		users.POST("/sos", h.triggerSOS)
		users.GET("/status", h.getStatus)
	}

	// Журнал оповещений
	protected.GET("/alerts", h.listAlerts)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
