package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"green-chemistry-helper/internal/pkg/common"
)

const defaultDedupWindow = time.Second

// deduplicator 請求指紋紀錄
type deduplicator struct {
	mu          sync.Mutex
	requests    map[string]time.Time
	window      time.Duration
	lastCleanup time.Time
	now         func() time.Time
}

// seen 記錄指紋，若在時間窗內重複出現則回傳 true
func (d *deduplicator) seen(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	d.cleanup(now)

	if lastTime, exists := d.requests[fingerprint]; exists && now.Sub(lastTime) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// cleanup 每十個時間窗清理一次過期指紋，呼叫者需持有鎖
func (d *deduplicator) cleanup(now time.Time) {
	if now.Sub(d.lastCleanup) < 10*d.window {
		return
	}
	d.lastCleanup = now
	for k, t := range d.requests {
		if now.Sub(t) > d.window {
			delete(d.requests, k)
		}
	}
}

// Deduplication 請求去重中間件，相同 IP、路徑與請求體在時間窗內只處理一次
func Deduplication(window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		window = defaultDedupWindow
	}
	d := &deduplicator{
		requests: make(map[string]time.Time),
		window:   window,
		now:      time.Now,
	}
	return dedupHandler(d)
}

func dedupHandler(d *deduplicator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 只處理 POST 請求
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			// 讀取請求體
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("Failed to read request body", zap.Error(err))
				var maxBytesErr *http.MaxBytesError
				if errors.As(err, &maxBytesErr) {
					c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.ErrorResponse{
						Code:    common.ErrCodeRequestTooLarge,
						Message: common.ErrRequestTooLarge.Message,
						Details: err.Error(),
					})
					return
				}
				c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrorResponse{
					Code:    common.ErrCodeInvalidRequest,
					Message: common.ErrInvalidRequest.Message,
					Details: err.Error(),
				})
				return
			}

			// 計算哈希
			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		// 生成請求指紋
		fingerprint := c.ClientIP() + ":" + c.Request.URL.Path
		if bodyHash != "" {
			fingerprint += ":" + bodyHash
		}

		// 檢查是否是重複請求
		if d.seen(fingerprint) {
			common.LogInfo("Duplicate request rejected",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrorResponse{
				Code:    common.ErrCodeTooManyRequests,
				Message: "Request too frequent",
			})
			return
		}

		c.Next()
	}
}
