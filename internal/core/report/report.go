package report

import (
	"context"
	"errors"
	"time"

	"green-chemistry-helper/internal/core/chemistry"
)

// PredictedSuffix 預測產物附加的標記
const PredictedSuffix = " (AI Predicted)"

// ErrNotFound 報告不存在或已過期
var ErrNotFound = errors.New("report not found")

// ErrStoreClosed 暫存已關閉
var ErrStoreClosed = errors.New("report store closed")

// Report 一次分析的完整紀錄
type Report struct {
	ID               string                   `json:"id" yaml:"id"`
	Input            chemistry.ReactionInput  `json:"input" yaml:"input"`
	PredictedProduct string                   `json:"predictedProduct,omitempty" yaml:"predictedProduct,omitempty"`
	Result           chemistry.AnalysisResult `json:"result" yaml:"result"`
	CreatedAt        time.Time                `json:"createdAt" yaml:"createdAt"`
}

// Predicted 產物是否由預測器產生
func (r *Report) Predicted() bool {
	return r.PredictedProduct != ""
}

// Stats 暫存統計
type Stats struct {
	Driver    string  `json:"driver"`
	Size      int     `json:"size"`
	MaxSize   int     `json:"max_size,omitempty"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	HitRatio  float64 `json:"hit_ratio"`
}

// Store 報告暫存介面
type Store interface {
	Save(ctx context.Context, r *Report) error
	Get(ctx context.Context, id string) (*Report, error)
	Stats(ctx context.Context) Stats
	Ping(ctx context.Context) error
	Close() error
}

func hitRatio(hits, misses int64) float64 {
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses)
}
