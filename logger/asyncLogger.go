package logger

import (
	"regexp"
	"sync"

	log_model "travel-portal/models/log"
	"travel-portal/types"

	"gorm.io/gorm"
)

// LogStore persists gateway call records.
type LogStore interface {
	SaveLog(entry types.LogEntry) error
}

type gormLogStore struct {
	db *gorm.DB
}

// NewGormLogStore stores log entries in the logs table.
func NewGormLogStore(db *gorm.DB) LogStore {
	return &gormLogStore{db: db}
}

func (s *gormLogStore) SaveLog(entry types.LogEntry) error {
	dbLog := log_model.Log{
		RequestID:    entry.RequestID,
		Service:      entry.Service,
		Method:       entry.Method,
		URL:          entry.URL,
		RequestBody:  entry.RequestBody,
		ResponseBody: entry.ResponseBody,
		StatusCode:   entry.StatusCode,
		DurationMs:   entry.DurationMs,
		Error:        entry.Error,
		CreatedAt:    entry.CreatedAt,
	}
	return s.db.Create(&dbLog).Error
}

type AsyncLogger struct {
	store   LogStore
	channel chan types.LogEntry
	done    chan struct{}
	once    sync.Once
}

func NewAsyncLogger(store LogStore, buffer int) *AsyncLogger {
	if buffer <= 0 {
		buffer = 100
	}
	return &AsyncLogger{
		store:   store,
		channel: make(chan types.LogEntry, buffer),
		done:    make(chan struct{}),
	}
}

// ProcessLog drains the channel until Close is called.
func (logger *AsyncLogger) ProcessLog() {
	defer close(logger.done)
	Info("Starting asynchronous gateway logger...")

	for logEntry := range logger.channel {
		if err := logger.store.SaveLog(logEntry); err != nil {
			Error("Failed to insert gateway log entry", err)
		} else {
			Debug("Inserted gateway log entry: " + logEntry.Method + " " + logEntry.URL)
		}
	}
}

// Log queues an entry. Entries are dropped when the buffer is full.
func (logger *AsyncLogger) Log(entry types.LogEntry) {
	entry.RequestBody = Redact(entry.RequestBody)
	entry.ResponseBody = Redact(entry.ResponseBody)

	defer func() {
		// Close raced with a late request.
		_ = recover()
	}()

	select {
	case logger.channel <- entry:
	default:
		Warning("Gateway log buffer full, dropping entry for " + entry.URL)
	}
}

// Close stops accepting entries and waits for the queue to drain.
func (logger *AsyncLogger) Close() {
	logger.once.Do(func() {
		close(logger.channel)
	})
	<-logger.done
}

var secretFields = regexp.MustCompile(`(?i)("(?:[a-z_]*password|razorpay_signature|signature|token)"\s*:\s*)"[^"]*"`)

// Redact masks password, signature and token values in a JSON body.
func Redact(body string) string {
	if body == "" {
		return body
	}
	return secretFields.ReplaceAllString(body, `$1"***"`)
}
