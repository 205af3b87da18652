package log

import (
	"context"
	"time"

	"github.com/siteplan/duration-planner/pkg/requestid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger logs the progress of named operations. Steps are logged at
// debug level, outcomes at info (success) or error level.
type StructuredLogger struct {
	name   string
	fields []zap.Field
	base   func() *zap.Logger
}

// NewDebugLogger returns a StructuredLogger writing to the global zap logger
// under the given name.
func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name, base: zap.L}
}

// NewStructuredLogger is NewDebugLogger with an explicit zap logger.
func NewStructuredLogger(l *zap.Logger, name string) *StructuredLogger {
	return &StructuredLogger{name: name, base: func() *zap.Logger { return l }}
}

// WithContext attaches the request id found in ctx, if any.
func (s *StructuredLogger) WithContext(ctx context.Context) *StructuredLogger {
	fields := append([]zap.Field{}, s.fields...)
	if id := requestid.FromContext(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	return &StructuredLogger{name: s.name, fields: fields, base: s.base}
}

// Operation starts describing an operation. Fields added to the builder are
// repeated on every event of the operation.
func (s *StructuredLogger) Operation(name string) *OperationBuilder {
	return &OperationBuilder{logger: s, operation: name}
}

type OperationBuilder struct {
	logger    *StructuredLogger
	operation string
	fields    []zap.Field
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *OperationBuilder) WithFloat(key string, value float64) *OperationBuilder {
	b.fields = append(b.fields, zap.Float64(key, value))
	return b
}

// Build returns the tracer used to log the operation's events.
func (b *OperationBuilder) Build() *OperationTracer {
	fields := make([]zap.Field, 0, len(b.logger.fields)+len(b.fields)+1)
	fields = append(fields, b.logger.fields...)
	fields = append(fields, zap.String("operation", b.operation))
	fields = append(fields, b.fields...)
	return &OperationTracer{
		logger:    b.logger.base().Named(b.logger.name),
		operation: b.operation,
		fields:    fields,
		start:     time.Now(),
	}
}

type OperationTracer struct {
	logger    *zap.Logger
	operation string
	fields    []zap.Field
	start     time.Time
}

// Step logs an intermediate stage of the operation.
func (t *OperationTracer) Step(name string) *Event {
	return t.event(zapcore.DebugLevel, t.operation+"."+name, zap.String("step", name))
}

// Success logs the completion of the operation with its duration.
func (t *OperationTracer) Success() *Event {
	return t.event(zapcore.InfoLevel, t.operation+" succeeded", zap.Duration("elapsed", time.Since(t.start)))
}

// Error logs a failure of the operation.
func (t *OperationTracer) Error(err error) *Event {
	return t.event(zapcore.ErrorLevel, t.operation+" failed", zap.Error(err))
}

// Warn logs an outcome that is not a failure but needs the operator's attention.
func (t *OperationTracer) Warn(msg string) *Event {
	return t.event(zapcore.WarnLevel, t.operation+": "+msg)
}

func (t *OperationTracer) event(level zapcore.Level, msg string, extra ...zap.Field) *Event {
	fields := make([]zap.Field, 0, len(t.fields)+len(extra))
	fields = append(fields, t.fields...)
	fields = append(fields, extra...)
	return &Event{logger: t.logger, level: level, msg: msg, fields: fields}
}

// Event is one log line being assembled. Nothing is written until Log.
type Event struct {
	logger *zap.Logger
	level  zapcore.Level
	msg    string
	fields []zap.Field
}

func (e *Event) WithString(key, value string) *Event {
	e.fields = append(e.fields, zap.String(key, value))
	return e
}

func (e *Event) WithInt(key string, value int) *Event {
	e.fields = append(e.fields, zap.Int(key, value))
	return e
}

func (e *Event) WithFloat(key string, value float64) *Event {
	e.fields = append(e.fields, zap.Float64(key, value))
	return e
}

func (e *Event) WithBool(key string, value bool) *Event {
	e.fields = append(e.fields, zap.Bool(key, value))
	return e
}

func (e *Event) Log() {
	if ce := e.logger.Check(e.level, e.msg); ce != nil {
		ce.Write(e.fields...)
	}
}
