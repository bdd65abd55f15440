package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(requestid.New(), Recovery(), Logger())
	r.Use(handlers...)
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/ping", ok)
	r.POST("/echo", ok)
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_Refill(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Second)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	// 其他客戶端不受影響
	assert.True(t, rl.Allow("b"))

	// 半秒補回一個令牌
	clock = clock.Add(500 * time.Millisecond)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	// 補充不超過容量
	clock = clock.Add(10 * time.Second)
	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimit_Middleware(t *testing.T) {
	r := newEngine(RateLimit(2, time.Minute))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "").Code)

	w := do(r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"code":"TOO_MANY_REQUESTS"`)
}

func TestDeduplication(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := &deduplicator{
		requests: make(map[string]time.Time),
		window:   time.Second,
		now:      func() time.Time { return clock },
	}
	r := newEngine(dedupHandler(d))

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/echo", `{"a":1}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/echo", `{"a":1}`).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/echo", `{"a":2}`).Code)

	// GET 不做去重
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "").Code)

	clock = clock.Add(1500 * time.Millisecond)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/echo", `{"a":1}`).Code)
}

func TestDeduplication_Cleanup(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := &deduplicator{
		requests: make(map[string]time.Time),
		window:   time.Second,
		now:      func() time.Time { return clock },
	}

	assert.False(t, d.seen("a"))
	assert.False(t, d.seen("b"))
	clock = clock.Add(20 * time.Second)
	assert.False(t, d.seen("c"))
	assert.Len(t, d.requests, 1)
}

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(BodySizeLimit(8))

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/echo", "small").Code)

	w := do(r, http.MethodPost, "/echo", strings.Repeat("x", 16))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
}

func TestDeduplication_ChunkedBodyTooLarge(t *testing.T) {
	r := newEngine(BodySizeLimit(16), Deduplication(time.Second))

	// 未知長度的請求體只能在讀取時觸發上限
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 100)))
	req.ContentLength = -1
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"REQUEST_TOO_LARGE"`)
}

func TestRecovery(t *testing.T) {
	r := newEngine()

	w := do(r, http.MethodGet, "/panic", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL_ERROR"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestTimeout(t *testing.T) {
	r := newEngine(Timeout(20 * time.Millisecond))

	w := do(r, http.MethodGet, "/slow", "")
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"GATEWAY_TIMEOUT"`)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "").Code)
}
