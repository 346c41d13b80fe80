package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/guttosm/laundry-service/internal/logger"
	"github.com/guttosm/laundry-service/internal/metrics"
	"github.com/guttosm/laundry-service/internal/service"
)

// AsyncLoggerConfig holds configuration for the async logger.
type AsyncLoggerConfig struct {
	// BufferSize is the size of the log entry channel buffer.
	BufferSize int
	// NumWorkers is the number of worker goroutines writing to the log store.
	NumWorkers int
	// BatchSize caps how many queued entries a worker writes in one call.
	BatchSize int
	// WriteTimeout bounds a single write to the log store.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns the defaults used by the server.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		BatchSize:    50,
		WriteTimeout: 5 * time.Second,
	}
}

// AsyncLoggerStats is a snapshot of the async logger counters.
type AsyncLoggerStats struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Written  int64 `json:"written"`
	Failed   int64 `json:"failed"`
}

// AsyncLogger writes request and audit entries to the log store from a fixed
// worker pool. When the buffer is full new entries are dropped.
// A nil *AsyncLogger is valid and drops everything.
type AsyncLogger struct {
	loggingService service.LoggingService
	entryCh        chan *model.LogEntry
	stopCh         chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup
	batchSize      int
	writeTimeout   time.Duration

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64
}

// NewAsyncLogger starts the worker pool. It returns nil when loggingService is nil.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}

	defaults := DefaultAsyncLoggerConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaults.BufferSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = defaults.NumWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}

	al := &AsyncLogger{
		loggingService: loggingService,
		entryCh:        make(chan *model.LogEntry, cfg.BufferSize),
		stopCh:         make(chan struct{}),
		batchSize:      cfg.BatchSize,
		writeTimeout:   cfg.WriteTimeout,
	}

	for i := 0; i < cfg.NumWorkers; i++ {
		al.wg.Add(1)
		go al.worker()
	}

	return al
}

func (al *AsyncLogger) worker() {
	defer al.wg.Done()

	for {
		select {
		case entry := <-al.entryCh:
			al.writeBatch(al.collect(entry))
		case <-al.stopCh:
			// Drain what is left before exiting.
			for {
				select {
				case entry := <-al.entryCh:
					al.writeBatch(al.collect(entry))
				default:
					return
				}
			}
		}
	}
}

// collect gathers first plus whatever is already queued, up to batchSize entries.
func (al *AsyncLogger) collect(first *model.LogEntry) []*model.LogEntry {
	batch := []*model.LogEntry{first}
	for len(batch) < al.batchSize {
		select {
		case entry := <-al.entryCh:
			batch = append(batch, entry)
		default:
			return batch
		}
	}
	return batch
}

func (al *AsyncLogger) writeBatch(batch []*model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	var err error
	if len(batch) == 1 {
		err = al.loggingService.CreateLog(ctx, batch[0])
	} else {
		err = al.loggingService.CreateLogs(ctx, batch)
	}

	n := int64(len(batch))
	if err != nil {
		al.failed.Add(n)
		for range batch {
			metrics.RecordLogEntry("failed")
		}
		log := logger.Logger()
		log.Warn().Err(err).Int("entries", len(batch)).Msg("Failed to write log entries")
		return
	}
	al.written.Add(n)
	for range batch {
		metrics.RecordLogEntry("written")
	}
}

// Log enqueues an entry. It reports false when the entry was dropped.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	if al == nil || entry == nil {
		return false
	}

	select {
	case <-al.stopCh:
		al.dropped.Add(1)
		metrics.RecordLogEntry("dropped")
		return false
	default:
	}

	select {
	case al.entryCh <- entry:
		al.enqueued.Add(1)
		metrics.RecordLogEntry("enqueued")
		return true
	default:
		al.dropped.Add(1)
		metrics.RecordLogEntry("dropped")
		return false
	}
}

// Stop drains pending entries and waits for the workers. It is safe to call more than once.
func (al *AsyncLogger) Stop() {
	if al == nil {
		return
	}
	al.stopOnce.Do(func() {
		close(al.stopCh)
		al.wg.Wait()
	})
}

// Stats returns the current counters.
func (al *AsyncLogger) Stats() AsyncLoggerStats {
	if al == nil {
		return AsyncLoggerStats{}
	}
	return AsyncLoggerStats{
		Enqueued: al.enqueued.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Failed:   al.failed.Load(),
	}
}
