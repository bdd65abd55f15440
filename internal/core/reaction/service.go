package reaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"green-chemistry-helper/internal/core/chemistry"
	"green-chemistry-helper/internal/core/report"
	"green-chemistry-helper/internal/pkg/common"

	"go.uber.org/zap"
)

// Exporter 報告匯出介面
type Exporter interface {
	Enqueue(r *report.Report) error
}

// Service 反應分析服務
type Service struct {
	store     report.Store
	exporter  Exporter
	predictor *chemistry.Predictor

	newID func() string
	now   func() time.Time
}

// Option 服務選項
type Option func(*Service)

// WithExporter 設定匯出隊列，未設定時不匯出
func WithExporter(e Exporter) Option {
	return func(s *Service) {
		s.exporter = e
	}
}

// WithPredictor 使用自訂規則的預測器
func WithPredictor(p *chemistry.Predictor) Option {
	return func(s *Service) {
		s.predictor = p
	}
}

// NewService 創建反應分析服務
func NewService(store report.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		newID: common.GenerateUUID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze 驗證輸入、必要時預測產物、評估並保存報告
func (s *Service) Analyze(ctx context.Context, input chemistry.ReactionInput) (*report.Report, error) {
	if err := chemistry.Validate(input); err != nil {
		return nil, err
	}

	var predicted string
	if strings.TrimSpace(input.Products) == "" {
		predicted = s.predict(input)
		input.Products = predicted + report.PredictedSuffix
	}

	start := time.Now()
	result := chemistry.AnalyzeReaction(input)

	r := &report.Report{
		ID:               s.newID(),
		Input:            input,
		PredictedProduct: predicted,
		Result:           result,
		CreatedAt:        s.now().UTC(),
	}

	if err := s.store.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	common.LogInfo("反應分析完成",
		zap.String("report_id", r.ID),
		zap.String("eco_rating", string(result.EcoRating)),
		zap.Int("issues", len(result.Issues)),
		zap.Bool("predicted", r.Predicted()),
		zap.Duration("耗時", time.Since(start)),
	)

	if s.exporter != nil {
		if err := s.exporter.Enqueue(r); err != nil {
			common.LogWarn("報告匯出排程失敗",
				zap.String("report_id", r.ID),
				zap.Error(err),
			)
		}
	}

	return r, nil
}

// Predict 只驗證反應物並回傳預測產物
func (s *Service) Predict(ctx context.Context, input chemistry.ReactionInput) (string, error) {
	if err := chemistry.ValidateReactants(input.Reactants); err != nil {
		return "", err
	}
	return s.predict(input), nil
}

// Get 取得已保存的報告
func (s *Service) Get(ctx context.Context, id string) (*report.Report, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			return nil, common.ErrReportNotFound.WithErr(err)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return r, nil
}

// StoreStats 報告暫存統計
func (s *Service) StoreStats(ctx context.Context) report.Stats {
	return s.store.Stats(ctx)
}

// PingStore 檢查報告暫存是否可用
func (s *Service) PingStore(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) predict(input chemistry.ReactionInput) string {
	if s.predictor != nil {
		return s.predictor.Predict(input)
	}
	return chemistry.PredictProduct(input)
}
