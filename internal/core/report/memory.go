package report

import (
	"context"
	"sync"
	"time"

	"green-chemistry-helper/internal/pkg/common"

	"go.uber.org/zap"
)

// MemoryStore 記憶體報告暫存，支援 TTL 與最少使用淘汰
type MemoryStore struct {
	maxSize int
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	store map[string]storeEntry
	stats storeStats

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// storeEntry 暫存條目
type storeEntry struct {
	report      *Report
	expiresAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// storeStats 暫存統計
type storeStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewMemoryStore 創建記憶體暫存；cleanupInterval 大於 0 時啟動定期清理
func NewMemoryStore(maxSize int, ttl, cleanupInterval time.Duration) *MemoryStore {
	m := &MemoryStore{
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
		store:   make(map[string]storeEntry),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		m.wg.Add(1)
		go m.startCleanup(cleanupInterval)
	}

	common.LogInfo("報告暫存已初始化",
		zap.Int("最大容量", maxSize),
		zap.Duration("存活時間", ttl),
		zap.Duration("清理間隔", cleanupInterval),
	)

	return m
}

// Save 儲存報告，容量已滿時先清理過期項目再淘汰最少使用者
func (m *MemoryStore) Save(ctx context.Context, r *Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.store[r.ID]; !exists && len(m.store) >= m.maxSize {
		evicted := m.cleanup()
		if evicted > 0 {
			common.LogDebug("報告暫存清理執行", zap.Int("清理數量", evicted))
		}
		if len(m.store) >= m.maxSize {
			m.evictLRU()
		}
		if len(m.store) >= m.maxSize {
			common.LogWarn("報告暫存已滿", zap.Int("目前容量", len(m.store)))
			return common.ErrStoreFull
		}
	}

	now := m.now()
	m.store[r.ID] = storeEntry{
		report:     r,
		expiresAt:  now.Add(m.ttl),
		lastAccess: now,
	}
	return nil
}

// Get 取得報告
func (m *MemoryStore) Get(ctx context.Context, id string) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[id]
	if !exists {
		m.stats.misses++
		common.LogStoreMiss("memory", id)
		return nil, ErrNotFound
	}

	// 檢查是否過期
	now := m.now()
	if now.After(entry.expiresAt) {
		delete(m.store, id)
		m.stats.evictions++
		m.stats.misses++
		common.LogStoreMiss("memory", id)
		return nil, ErrNotFound
	}

	entry.lastAccess = now
	entry.accessCount++
	m.store[id] = entry
	m.stats.hits++
	common.LogStoreHit("memory", id)

	return entry.report, nil
}

// startCleanup 定期清理過期報告
func (m *MemoryStore) startCleanup(interval time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.cleanup()
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// cleanup 清理過期報告，呼叫者需持有鎖
func (m *MemoryStore) cleanup() int {
	now := m.now()
	count := 0

	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}

	if count > 0 {
		common.LogInfo("Cleaned up expired reports",
			zap.Int("count", count),
			zap.Int64("total_evictions", m.stats.evictions),
			zap.Int("remaining_size", len(m.store)),
		)
	}

	return count
}

// evictLRU 淘汰訪問次數最少、最久未訪問的報告，呼叫者需持有鎖
func (m *MemoryStore) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogDebug("報告已淘汰(LRU)", zap.String("report_id", oldestKey))
	}
}

// Stats 獲取暫存統計信息
func (m *MemoryStore) Stats(ctx context.Context) Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Driver:    "memory",
		Size:      len(m.store),
		MaxSize:   m.maxSize,
		Hits:      m.stats.hits,
		Misses:    m.stats.misses,
		Evictions: m.stats.evictions,
		HitRatio:  hitRatio(m.stats.hits, m.stats.misses),
	}
}

// Ping 暫存關閉後回傳 ErrStoreClosed
func (m *MemoryStore) Ping(ctx context.Context) error {
	select {
	case <-m.done:
		return ErrStoreClosed
	default:
		return nil
	}
}

// Close 停止清理協程並清空暫存
func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() {
		close(m.done)
	})
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]storeEntry)
	common.LogInfo("報告暫存已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
