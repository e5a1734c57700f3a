package audit_test

import (
	"context"
	"testing"

	"go-careers-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@gmail.com", audit.MaskEmail("john@gmail.com"))
	assert.Equal(t, "***@gmail.com", audit.MaskEmail("j@gmail.com"))
	assert.Len(t, audit.MaskEmail("no-at-sign"), 16)
}

func TestLogMasksEmailAndPicksLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := audit.NewWithZap(zap.New(core), "careers", "test")

	l.Log(context.Background(), audit.Event{
		Event:   audit.EventApplicationDuplicate,
		Email:   "alice@gmail.com",
		Details: map[string]interface{}{"job_id": int64(7)},
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "application_duplicate", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "a***@gmail.com", fields["email"])
	assert.Equal(t, "careers", fields["service"])
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *audit.Logger
	assert.NotPanics(t, func() {
		l.Log(context.Background(), audit.Event{Event: audit.EventCandidateCreated})
	})
	assert.NoError(t, l.Sync())
}
