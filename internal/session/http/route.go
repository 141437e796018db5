package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the websocket endpoint. Auth happens inside Serve via
// the token query parameter, so no middleware here.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/ws", h.Serve)
}
