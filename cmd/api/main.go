package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"green-chemistry-helper/internal/api"
	"green-chemistry-helper/internal/core/export"
	"green-chemistry-helper/internal/core/reaction"
	"green-chemistry-helper/internal/core/report"
	"green-chemistry-helper/internal/infrastructure/config"
	"green-chemistry-helper/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含選用的 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(common.LogOptions{
		Level:      cfg.LogLevel,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		Service:    cfg.App.Name,
	}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("store_driver", cfg.Store.Driver),
		zap.Bool("export_enabled", cfg.Export.Enabled),
		zap.String("export_token", config.MaskSecret(cfg.Export.Token)),
	)

	// 初始化報告暫存
	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := report.NewStore(initCtx, cfg)
	initCancel()
	if err != nil {
		common.LogFatal("Failed to initialize report store", zap.Error(err))
	}
	defer store.Close()

	// 初始化匯出隊列
	var dispatcher *export.Dispatcher
	opts := []reaction.Option{}
	if cfg.Export.Enabled {
		publisher := export.NewWebhookPublisher(cfg.Export, cfg.App.Name)
		dispatcher = export.NewDispatcher(publisher, cfg.Queue.Workers, cfg.Queue.MaxSize, cfg.Export.Timeout)
		opts = append(opts, reaction.WithExporter(dispatcher))
	}

	reactionSvc := reaction.NewService(store, opts...)

	// 設置路由
	router := api.SetupRouter(cfg, reactionSvc, dispatcher)

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	serverErr := make(chan error, 1)
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		common.LogError("Failed to start server", zap.Error(err))
	}

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
	}

	// 等待匯出隊列處理完畢
	if dispatcher != nil {
		dispatcher.Close()
	}

	common.LogInfo("Server exited")
}
