package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the page and the /v1 API on router
func RegisterRoutes(router gin.IRouter, h *DashboardHandlers) {
	router.GET("/", h.Painel)

	v1 := router.Group("/v1")
	{
		v1.GET("/health", h.HealthCheck)
		v1.GET("/options", h.GetOptions)
		v1.GET("/dashboard", h.GetDashboard)
		v1.GET("/dashboard/export.xlsx", h.ExportDashboard)
		v1.GET("/charts/:chart", h.GetChart)
	}
}
