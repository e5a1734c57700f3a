package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType names a business event worth keeping in the audit trail.
type EventType string

const (
	EventCandidateCreated     EventType = "candidate_created"
	EventCandidateUpdated     EventType = "candidate_updated"
	EventPayloadRejected      EventType = "payload_rejected"
	EventApplicationSubmitted EventType = "application_submitted"
	EventApplicationDuplicate EventType = "application_duplicate"
	EventCandidateMissing     EventType = "application_candidate_missing"
	EventRateLimitTriggered   EventType = "rate_limit_triggered"
	EventStorageFailure       EventType = "storage_failure"
)

// Event is one audit record. Emails are masked before they reach the sink.
type Event struct {
	Timestamp time.Time
	Event     EventType
	Email     string
	IP        string
	RequestID string
	Details   map[string]interface{}
}

// Logger writes audit events through zap.
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// New builds a production zap logger writing JSON to stdout.
func New(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zl, err := config.Build(zap.AddCaller())
	if err != nil {
		zl, _ = zap.NewProduction()
	}

	return &Logger{
		zapLogger:   zl,
		serviceName: serviceName,
		environment: environment,
	}
}

// NewWithZap wraps an existing zap logger (zap.NewNop() in tests, observer cores in assertions).
func NewWithZap(zl *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{zapLogger: zl, serviceName: serviceName, environment: environment}
}

// NewNop discards everything.
func NewNop() *Logger {
	return NewWithZap(zap.NewNop(), "", "")
}

func levelFor(event EventType) zapcore.Level {
	switch event {
	case EventCandidateCreated, EventCandidateUpdated, EventApplicationSubmitted:
		return zapcore.InfoLevel
	case EventStorageFailure:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// Log records an event. A nil Logger is a no-op.
func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(event.Event)),
		zap.Time("event_time", event.Timestamp),
	}
	if event.Email != "" {
		fields = append(fields, zap.String("email", MaskEmail(event.Email)))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	l.zapLogger.Log(levelFor(event.Event), string(event.Event), fields...)
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@gmail.com")
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return HashValue(email)
	}
	if at <= 1 {
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}

// HashValue creates a short SHA256 fingerprint of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
