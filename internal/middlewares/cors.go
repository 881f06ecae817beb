package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maru-mm/funnel-swiper-completo/internal/config"
)

// CORS 为 /api/* 提供跨域支持（受配置控制，默认关闭）。
// 编辑器前端与本服务通常不同源，开启后按白名单回显 Origin。
func CORS(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.CORS.EnableAPI {
			c.Next()
			return
		}
		origin := c.GetHeader("Origin")
		if origin != "" && (len(cfg.CORS.AllowedOrigins) == 0 || contains(cfg.CORS.AllowedOrigins, origin)) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
