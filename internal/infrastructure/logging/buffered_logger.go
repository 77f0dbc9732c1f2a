package logging

import (
	"context"

	"github.com/alexisbeaulieu97/prism/internal/ports"
)

// BufferedLogger is the logger a command starts with. It writes into an
// EventBuffer until the configured logger exists.
type BufferedLogger struct {
	buffer *EventBuffer
	fields []interface{}
}

// NewBufferedLogger returns a logger writing into buffer, with fields attached
// to every record.
func NewBufferedLogger(buffer *EventBuffer, fields ...interface{}) *BufferedLogger {
	return &BufferedLogger{buffer: buffer, fields: fields}
}

func (l *BufferedLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, levelDebug, msg, fields...)
}

func (l *BufferedLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, levelInfo, msg, fields...)
}

func (l *BufferedLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, levelWarn, msg, fields...)
}

func (l *BufferedLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, levelError, msg, fields...)
}

// With returns a child logger sharing the buffer.
func (l *BufferedLogger) With(fields ...interface{}) ports.Logger {
	return &BufferedLogger{buffer: l.buffer, fields: append(append([]interface{}{}, l.fields...), fields...)}
}

func (l *BufferedLogger) log(ctx context.Context, level logLevel, msg string, fields ...interface{}) {
	if l == nil || l.buffer == nil {
		return
	}
	l.buffer.add(bufferedEntry{
		ctx:    ctx,
		level:  level,
		msg:    msg,
		fields: append(append([]interface{}{}, l.fields...), fields...),
	})
}
