package report

import (
	"context"
	"fmt"

	"green-chemistry-helper/internal/infrastructure/config"
	"green-chemistry-helper/internal/pkg/common"

	"go.uber.org/zap"
)

// NewStore 依設定建立報告暫存
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		store, err := NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Store.TTL,
		})
		if err != nil {
			return nil, err
		}
		common.LogInfo("使用 Redis 報告暫存", zap.String("addr", cfg.Redis.Addr))
		return store, nil
	case config.StoreDriverMemory, "":
		return NewMemoryStore(cfg.Store.MaxSize, cfg.Store.TTL, cfg.Store.CleanupInterval), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
