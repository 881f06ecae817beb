package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/maru-mm/funnel-swiper-completo/internal/config"
	"github.com/maru-mm/funnel-swiper-completo/internal/metrics"
	"github.com/maru-mm/funnel-swiper-completo/internal/middlewares"
	"github.com/maru-mm/funnel-swiper-completo/internal/services"
)

// Handler 聚合所有依赖（配置、服务、可选 Redis）并注册所有 HTTP 路由。
type Handler struct {
	cfg           config.Config
	screenshotSvc *services.ScreenshotService
	scrapeSvc     *services.ScrapeService
	rdb           *redis.Client
}

// New 构造 Handler，将各领域服务注入，用于后续路由注册与处理。
// rdb 可为 nil：此时两个 API 端点不挂限流中间件。
func New(cfg config.Config, ss *services.ScreenshotService, sc *services.ScrapeService, rdb *redis.Client) *Handler {
	return &Handler{cfg: cfg, screenshotSvc: ss, scrapeSvc: sc, rdb: rdb}
}

// RegisterRoutes 在 Gin 路由上挂载全部端点（截图、抓取与运维端点）。
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api", middlewares.CORS(h.cfg))
	api.POST("/screenshot", h.limited("screenshot", h.cfg.Limits.ScreenshotPerMinute, h.screenshot)...)
	api.POST("/scrape-url", h.limited("scrape", h.cfg.Limits.ScrapePerMinute, h.scrapeURL)...)

	// 运维端点
	r.GET("/metrics", metrics.Exposer())
	r.GET("/healthz", h.healthz)
}

// limited 在配置了 Redis 时为端点追加按 IP 的限流中间件。
func (h *Handler) limited(prefix string, limit int, fn gin.HandlerFunc) []gin.HandlerFunc {
	if h.rdb == nil {
		return []gin.HandlerFunc{fn}
	}
	window := h.cfg.Limits.Window
	if window <= 0 {
		window = time.Minute
	}
	rl := middlewares.RateLimit(h.rdb, prefix, limit, window, func(c *gin.Context) string { return c.ClientIP() })
	return []gin.HandlerFunc{rl, fn}
}

// healthz 健康检查：进程存活即返回 ok。
// @Summary      健康检查
// @Tags         ops
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /healthz [get]
func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// setNoCache 为含密钥参数的响应添加禁止缓存的标准响应头。
func setNoCache(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
