package api

import (
	"net/http"
	"time"

	"green-chemistry-helper/internal/api/handlers/health"
	reactionHandler "green-chemistry-helper/internal/api/handlers/reaction"
	"green-chemistry-helper/internal/api/middleware"
	"green-chemistry-helper/internal/core/export"
	"green-chemistry-helper/internal/core/reaction"
	"green-chemistry-helper/internal/infrastructure/config"
	"green-chemistry-helper/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由，dispatcher 為 nil 代表未啟用匯出
func SetupRouter(cfg *config.Config, reactionSvc *reaction.Service, dispatcher *export.Dispatcher) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// 註冊基礎中間件
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	// 請求逾時
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// 全局中間件：注入配置
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	})

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, reactionSvc, dispatcher)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	{
		h := reactionHandler.NewHandler(reactionSvc, cfg.App.PublicURL)

		reactions := api.Group("/reactions")
		{
			reactions.POST("/analyze", middleware.Deduplication(cfg.DedupWindow), h.HandleAnalyze)
			reactions.POST("/predict", h.HandlePredict)
			reactions.GET("/:id", h.HandleGet)
			reactions.GET("/:id/export", h.HandleExport)
			reactions.GET("/:id/share", h.HandleShare)
		}

		api.GET("/solvents", h.HandleSolvents)
		api.GET("/catalysts", h.HandleCatalysts)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrorResponse{
			Code:    common.ErrCodeNotFound,
			Message: common.ErrNotFound.Message,
			Details: c.Request.URL.Path,
		})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, common.ErrorResponse{
			Code:    common.ErrCodeMethodNotAllowed,
			Message: common.ErrMethodNotAllowed.Message,
			Details: c.Request.Method,
		})
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.Bool("export_enabled", dispatcher != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
