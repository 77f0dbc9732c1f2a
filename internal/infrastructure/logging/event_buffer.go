package logging

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/prism/internal/ports"
)

// Startup only logs a handful of records before the configuration is read.
const defaultBufferLimit = 256

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

type bufferedEntry struct {
	ctx    context.Context
	level  logLevel
	msg    string
	fields []interface{}
}

// EventBuffer holds the records a command logs before its configuration
// decides the real level and format. When full it drops the oldest.
type EventBuffer struct {
	mu      sync.Mutex
	limit   int
	events  []bufferedEntry
	dropped int
}

// NewEventBuffer creates a buffer holding up to limit records (256 when limit
// is not positive).
func NewEventBuffer(limit int) *EventBuffer {
	if limit <= 0 {
		limit = defaultBufferLimit
	}
	return &EventBuffer{
		limit:  limit,
		events: make([]bufferedEntry, 0, limit),
	}
}

func (b *EventBuffer) add(entry bufferedEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.events) == b.limit {
		copy(b.events, b.events[1:])
		b.events[len(b.events)-1] = entry
		b.dropped++
		return
	}
	b.events = append(b.events, entry)
}

// Len reports how many records are waiting to be flushed.
func (b *EventBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

// Flush replays the buffered records into delegate in order, tagged
// phase=startup, and empties the buffer. Records lost to the limit are
// reported with one warning.
func (b *EventBuffer) Flush(delegate ports.Logger) {
	if delegate == nil {
		return
	}
	b.mu.Lock()
	events := make([]bufferedEntry, len(b.events))
	copy(events, b.events)
	dropped := b.dropped
	b.events = b.events[:0]
	b.dropped = 0
	b.mu.Unlock()

	startup := delegate.With("phase", "startup")
	if dropped > 0 {
		startup.Warn(context.Background(), "startup log records dropped", "dropped", dropped, "limit", b.limit)
	}
	for _, entry := range events {
		switch entry.level {
		case levelDebug:
			startup.Debug(entry.ctx, entry.msg, entry.fields...)
		case levelWarn:
			startup.Warn(entry.ctx, entry.msg, entry.fields...)
		case levelError:
			startup.Error(entry.ctx, entry.msg, entry.fields...)
		default:
			startup.Info(entry.ctx, entry.msg, entry.fields...)
		}
	}
}
