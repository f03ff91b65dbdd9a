package middleware

import (
	"net/http"
	"runtime/debug"

	"git.thinkinpower.net/ccform/mod"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

// Recovery turns a handler panic into a failure response and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Errorf("panic: %v, route: %s, stack: %s", err, c.FullPath(), string(debug.Stack()))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					mod.ResponseValue{Code: mod.ResponseCodeFailure, Msg: "internal error"})
			}
		}()
		c.Next()
	}
}
