package export

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"green-chemistry-helper/internal/core/report"
	"green-chemistry-helper/internal/pkg/common"

	"go.uber.org/zap"
)

// Status 隊列狀態
type Status struct {
	Enabled        bool  `json:"enabled"`
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	FailedCount    int64 `json:"failed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Dispatcher 匯出隊列，由固定數量的 worker 消化
type Dispatcher struct {
	publisher Publisher
	timeout   time.Duration
	workers   int
	maxSize   int

	queue     chan *report.Report
	mu        sync.RWMutex
	closed    bool
	wg        sync.WaitGroup
	processed atomic.Int64
	failed    atomic.Int64
}

// NewDispatcher 創建匯出隊列並啟動 worker
func NewDispatcher(publisher Publisher, workers, maxSize int, timeout time.Duration) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if maxSize <= 0 {
		maxSize = 1
	}

	d := &Dispatcher{
		publisher: publisher,
		timeout:   timeout,
		workers:   workers,
		maxSize:   maxSize,
		queue:     make(chan *report.Report, maxSize),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	common.LogInfo("匯出隊列已啟動",
		zap.Int("workers", workers),
		zap.Int("max_queue_size", maxSize),
	)

	return d
}

// Enqueue 將報告加入匯出隊列，隊列滿時立即返回錯誤
func (d *Dispatcher) Enqueue(r *report.Report) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return common.ErrExportQueueClosed
	}

	select {
	case d.queue <- r:
		common.LogDebug("Report enqueued",
			zap.String("report_id", r.ID),
			zap.Int("queue_length", len(d.queue)),
			zap.Int("max_queue_size", d.maxSize),
		)
		return nil
	default:
		return common.ErrExportQueueFull
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for r := range d.queue {
		d.publish(id, r)
	}
}

func (d *Dispatcher) publish(workerID int, r *report.Report) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	err := d.publisher.Publish(ctx, r)
	common.LogExport(r.ID, time.Since(start), err)

	if err != nil {
		d.failed.Add(1)
		common.LogDebug("匯出失敗", zap.Int("worker", workerID), zap.String("report_id", r.ID))
		return
	}
	d.processed.Add(1)
}

// Status 獲取隊列狀態
func (d *Dispatcher) Status() Status {
	return Status{
		Enabled:        true,
		QueueLength:    len(d.queue),
		ProcessedCount: d.processed.Load(),
		FailedCount:    d.failed.Load(),
		MaxQueueSize:   d.maxSize,
		Workers:        d.workers,
	}
}

// Close 停止接收新報告，等待隊列中的報告處理完畢
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	common.LogInfo("匯出隊列已關閉",
		zap.Int64("processed_count", d.processed.Load()),
		zap.Int64("failed_count", d.failed.Load()),
	)
}
