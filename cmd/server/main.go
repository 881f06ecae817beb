package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/maru-mm/funnel-swiper-completo/internal/config"
	"github.com/maru-mm/funnel-swiper-completo/internal/handlers"
	"github.com/maru-mm/funnel-swiper-completo/internal/metrics"
	"github.com/maru-mm/funnel-swiper-completo/internal/middlewares"
	"github.com/maru-mm/funnel-swiper-completo/internal/services"
	"github.com/maru-mm/funnel-swiper-completo/internal/storage"
)

// main 为服务入口：加载配置、初始化日志/可选 Redis/服务、注册路由并启动 HTTP 服务。
func main() {
	// 配置结构化日志格式
	log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)

	// 加载配置（以配置文件为主，配合内置默认值）
	cfg := config.Load()
	log.WithFields(log.Fields{
		"env":                 cfg.Env,
		"http_addr":           cfg.HTTPAddr,
		"screenshot_endpoint": cfg.Screenshot.Endpoint,
		"redis_addr":          cfg.Redis.Addr,
		"cors_api":            cfg.CORS.EnableAPI,
	}).Info("configuration loaded")

	// 可选的 Redis（仅用于 API 限流；未配置时服务完全无状态）
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		var err error
		rdb, err = storage.InitRedis(cfg)
		if err != nil {
			log.WithError(err).Fatal("failed to connect redis")
		}
		defer func() { _ = rdb.Close() }()
	} else {
		log.Info("redis not configured, rate limiting disabled")
	}

	// 初始化核心服务
	screenshotSvc := services.NewScreenshotService(cfg)
	scrapeSvc := services.NewScrapeService(cfg)

	// HTTP 路由与中间件
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestID())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.SecurityHeaders(cfg))
	router.Use(metrics.Handler())

	// 装载 HTTP 处理器
	h := handlers.New(cfg, screenshotSvc, scrapeSvc, rdb)
	h.RegisterRoutes(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("starting http server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen")
		}
	}()

	// 优雅退出
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	} else {
		log.Info("server stopped")
	}
}
