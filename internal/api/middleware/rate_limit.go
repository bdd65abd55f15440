package middleware

import (
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"green-chemistry-helper/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter 以客戶端 IP 區分的令牌桶限流器
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	rate     float64
	window   time.Duration
	now      func() time.Time
}

// bucket 單一客戶端的令牌桶
type bucket struct {
	tokens   float64
	lastTime time.Time
}

// NewRateLimiter 創建新的限流器
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		capacity: float64(requests),
		rate:     float64(requests) / window.Seconds(),
		window:   window,
		now:      time.Now,
	}
}

// Allow 檢查是否允許請求
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.capacity, lastTime: now}
		rl.buckets[key] = b
		rl.prune(now)
	}

	// 添加新令牌
	elapsed := now.Sub(b.lastTime).Seconds()
	b.lastTime = now
	b.tokens = math.Min(rl.capacity, b.tokens+elapsed*rl.rate)

	// 檢查是否有可用令牌
	if b.tokens >= 1 {
		b.tokens--
		return true
	}

	return false
}

// prune 移除已補滿且閒置超過一個時間窗的令牌桶，呼叫者需持有鎖
func (rl *RateLimiter) prune(now time.Time) {
	if len(rl.buckets) < 1024 {
		return
	}
	for key, b := range rl.buckets {
		if now.Sub(b.lastTime) > rl.window {
			delete(rl.buckets, key)
		}
	}
}

// RateLimit 限流中間件
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	return RateLimitWith(NewRateLimiter(requests, window))
}

// RateLimitWith 使用指定的限流器
func RateLimitWith(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(math.Ceil(limiter.window.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrorResponse{
				Code:    common.ErrCodeTooManyRequests,
				Message: common.ErrTooManyRequests.Message,
			})
			return
		}

		c.Next()
	}
}
