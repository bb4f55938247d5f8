package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.Use(identityMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id/slot", h.ChangeSlot)
		group.POST("/:id/cancel", h.Cancel)
		group.POST("/:id/confirm", h.Confirm)
	}
}
