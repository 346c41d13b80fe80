//go:build !integration

package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/guttosm/laundry-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recordingLogs is a LoggingService that keeps written entries in memory.
// When gate is set, writes block until it is closed and started is signalled first.
type recordingLogs struct {
	mu      sync.Mutex
	entries []*model.LogEntry
	calls   int
	err     error
	gate    chan struct{}
	started chan struct{}
}

func (r *recordingLogs) write(entries ...*model.LogEntry) error {
	if r.gate != nil {
		select {
		case r.started <- struct{}{}:
		default:
		}
		<-r.gate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *recordingLogs) CreateLog(_ context.Context, entry *model.LogEntry) error {
	return r.write(entry)
}

func (r *recordingLogs) CreateLogs(_ context.Context, entries []*model.LogEntry) error {
	return r.write(entries...)
}

func (r *recordingLogs) QueryLogs(context.Context, model.LogQueryOptions) ([]model.LogEntry, error) {
	return nil, nil
}

func (r *recordingLogs) CountLogs(context.Context, model.LogQueryOptions) (int64, error) {
	return 0, nil
}

func (r *recordingLogs) Entries() []*model.LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.LogEntry(nil), r.entries...)
}

func TestNewAsyncLogger(t *testing.T) {
	t.Run("nil service", func(t *testing.T) {
		assert.Nil(t, NewAsyncLogger(nil, DefaultAsyncLoggerConfig()))
	})

	t.Run("zero config uses defaults", func(t *testing.T) {
		al := NewAsyncLogger(&recordingLogs{}, AsyncLoggerConfig{})
		require.NotNil(t, al)
		defer al.Stop()

		defaults := DefaultAsyncLoggerConfig()
		assert.Equal(t, defaults.BufferSize, cap(al.entryCh))
		assert.Equal(t, defaults.BatchSize, al.batchSize)
		assert.Equal(t, defaults.WriteTimeout, al.writeTimeout)
	})
}

func TestAsyncLogger_WritesAllOnStop(t *testing.T) {
	logs := &recordingLogs{}
	al := NewAsyncLogger(logs, AsyncLoggerConfig{BufferSize: 200, NumWorkers: 3, BatchSize: 10, WriteTimeout: time.Second})

	for i := 0; i < 100; i++ {
		require.True(t, al.Log(&model.LogEntry{Message: "HTTP request"}))
	}
	al.Stop()

	assert.Len(t, logs.Entries(), 100)
	stats := al.Stats()
	assert.Equal(t, int64(100), stats.Enqueued)
	assert.Equal(t, int64(100), stats.Written)
	assert.Zero(t, stats.Dropped)
	assert.Zero(t, stats.Failed)
}

func TestAsyncLogger_DropsWhenFull(t *testing.T) {
	logs := &recordingLogs{gate: make(chan struct{}), started: make(chan struct{}, 1)}
	al := NewAsyncLogger(logs, AsyncLoggerConfig{BufferSize: 1, NumWorkers: 1, BatchSize: 1, WriteTimeout: time.Second})

	require.True(t, al.Log(&model.LogEntry{Message: "first"}))
	<-logs.started
	require.True(t, al.Log(&model.LogEntry{Message: "second"}))
	assert.False(t, al.Log(&model.LogEntry{Message: "third"}))

	close(logs.gate)
	al.Stop()

	stats := al.Stats()
	assert.Equal(t, int64(2), stats.Enqueued)
	assert.Equal(t, int64(1), stats.Dropped)
	assert.Equal(t, int64(2), stats.Written)
}

func TestAsyncLogger_CountsFailures(t *testing.T) {
	logs := &recordingLogs{err: errors.New("mongo down")}
	al := NewAsyncLogger(logs, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, BatchSize: 5, WriteTimeout: time.Second})

	for i := 0; i < 4; i++ {
		al.Log(&model.LogEntry{})
	}
	al.Stop()

	stats := al.Stats()
	assert.Equal(t, int64(4), stats.Failed)
	assert.Zero(t, stats.Written)
}

func TestAsyncLogger_SingleEntryUsesCreateLog(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	svc.On("CreateLog", mock.Anything, mock.MatchedBy(func(e *model.LogEntry) bool {
		return e.QuoteID == "q-1"
	})).Return(nil).Once()

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 1, NumWorkers: 1, BatchSize: 10, WriteTimeout: time.Second})
	require.True(t, al.Log(&model.LogEntry{QuoteID: "q-1"}))
	al.Stop()

	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "CreateLogs", mock.Anything, mock.Anything)
}

func TestAsyncLogger_AfterStop(t *testing.T) {
	al := NewAsyncLogger(&recordingLogs{}, DefaultAsyncLoggerConfig())
	al.Stop()
	assert.NotPanics(t, al.Stop)

	assert.False(t, al.Log(&model.LogEntry{}))
	assert.Equal(t, int64(1), al.Stats().Dropped)
}

func TestAsyncLogger_Nil(t *testing.T) {
	var al *AsyncLogger

	assert.False(t, al.Log(&model.LogEntry{}))
	assert.NotPanics(t, al.Stop)
	assert.Equal(t, AsyncLoggerStats{}, al.Stats())
}

func TestAsyncLogger_NilEntry(t *testing.T) {
	al := NewAsyncLogger(&recordingLogs{}, DefaultAsyncLoggerConfig())
	defer al.Stop()

	assert.False(t, al.Log(nil))
	assert.Zero(t, al.Stats().Dropped)
}
