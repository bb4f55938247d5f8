package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/slots")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("/generate", h.Generate)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}
