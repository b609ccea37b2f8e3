package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeamanwal/brysk/internal/container"
	"github.com/codeamanwal/brysk/internal/middleware"
)

func RegisterAPIRoutes(router *gin.Engine, c *container.Container) {
	c.ReferenceHandler.RegisterRoutes(router)
	c.SalesHandler.RegisterRoutes(router)
	c.BillsHandler.RegisterRoutes(router)
	c.InventoryHandler.RegisterRoutes(router)
	c.DiscrepancyHandler.RegisterRoutes(router)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the analytics API")
	})
	router.GET("/health", middleware.HealthCheckMiddleware())
}
