package export

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"green-chemistry-helper/internal/core/report"
	"green-chemistry-helper/internal/infrastructure/config"

	"github.com/go-resty/resty/v2"
)

// Publisher 報告發布介面
type Publisher interface {
	Publish(ctx context.Context, r *report.Report) error
}

// WebhookPublisher 以 HTTP POST 將報告 JSON 推送到 webhook
type WebhookPublisher struct {
	client *resty.Client
	url    string
}

// NewWebhookPublisher 創建 webhook 發布器
func NewWebhookPublisher(cfg config.ExportConfig, appName string) *WebhookPublisher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Source", appName)

	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &WebhookPublisher{
		client: client,
		url:    cfg.WebhookURL,
	}
}

// Publish 發送報告
func (p *WebhookPublisher) Publish(ctx context.Context, r *report.Report) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("X-Report-ID", r.ID).
		SetBody(r).
		Post(p.url)

	if err != nil {
		return fmt.Errorf("failed to send report to webhook: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("webhook returned error: %d %s", resp.StatusCode(), resp.String())
	}

	return nil
}
