package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"green-chemistry-helper/internal/core/export"
	"green-chemistry-helper/internal/core/report"
	"green-chemistry-helper/internal/infrastructure/config"
	"green-chemistry-helper/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Store     report.Stats           `json:"store"`
	Export    export.Status          `json:"export"`
}

// StatsProvider 提供報告暫存統計與連線檢查
type StatsProvider interface {
	StoreStats(ctx context.Context) report.Stats
	PingStore(ctx context.Context) error
}

// Handler 健康檢查處理程序
type Handler struct {
	config     *config.Config
	stats      StatsProvider
	dispatcher *export.Dispatcher
}

// NewHandler 創建健康檢查處理程序，dispatcher 為 nil 代表未啟用匯出
func NewHandler(cfg *config.Config, stats StatsProvider, dispatcher *export.Dispatcher) *Handler {
	return &Handler{
		config:     cfg,
		stats:      stats,
		dispatcher: dispatcher,
	}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Store:  h.stats.StoreStats(c.Request.Context()),
		Export: h.exportStatus(),
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，報告暫存無法連線或匯出隊列已滿時回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if err := h.stats.PingStore(c.Request.Context()); err != nil {
		common.LogWarn("Readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
			Code:    common.ErrCodeServiceUnavailable,
			Message: common.ErrServiceUnavailable.Message,
			Details: "report store: " + err.Error(),
		})
		return
	}

	exportStatus := h.exportStatus()
	if exportStatus.Enabled && exportStatus.QueueLength >= exportStatus.MaxQueueSize {
		c.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
			Code:    common.ErrCodeServiceUnavailable,
			Message: common.ErrServiceUnavailable.Message,
			Details: "export queue full",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func (h *Handler) exportStatus() export.Status {
	if h.dispatcher == nil {
		return export.Status{}
	}
	return h.dispatcher.Status()
}
