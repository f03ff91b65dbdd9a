package route

import (
	"net/http"
	"time"

	"git.thinkinpower.net/ccform/data"
	"github.com/gin-gonic/gin"
)

func Register(r *gin.Engine, h *CardHandler) {
	g := r.Group("/ccform")
	{
		g.GET("/index", func(context *gin.Context) {
			context.String(http.StatusOK, "Hello ccform, date: %s", time.Now().Format(data.DateTimePattern))
		})

		g.GET("/classify/:number", h.classify)
		g.GET("/checksum/:number", h.checksum)
		g.POST("/validate", h.validate)
		g.POST("/save", h.save)
	}
}
