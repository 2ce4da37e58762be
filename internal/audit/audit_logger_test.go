package audit

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastEvent(t *testing.T, buf *bytes.Buffer) AuditEvent {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	line := lines[len(lines)-1]

	idx := strings.Index(line, "AUDIT: ")
	require.GreaterOrEqual(t, idx, 0, line)

	var event AuditEvent
	require.NoError(t, json.Unmarshal([]byte(line[idx+len("AUDIT: "):]), &event))
	return event
}

func TestAuditLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewAuditLoggerTo(&buf)

	t.Run("loan created", func(t *testing.T) {
		logger.LogLoanCreated(3, "Asha", decimal.NewFromInt(5000), "abc")

		event := lastEvent(t, &buf)
		assert.Equal(t, EventLoanCreated, event.EventType)
		require.NotNil(t, event.LoanID)
		assert.Equal(t, int64(3), *event.LoanID)
		assert.Equal(t, "5000", event.Amount)
		_, err := uuid.Parse(event.EventID)
		assert.NoError(t, err)
	})

	t.Run("loan updated", func(t *testing.T) {
		logger.LogLoanUpdated(3, "operator-1", decimal.NewFromInt(5000), decimal.NewFromInt(5500), "def")

		event := lastEvent(t, &buf)
		assert.Equal(t, EventLoanUpdated, event.EventType)
		assert.Equal(t, "operator-1", event.Actor)
		assert.Equal(t, "5500", event.Amount)
	})

	t.Run("fraud", func(t *testing.T) {
		logger.LogFraud(4, "stored", "expected")

		event := lastEvent(t, &buf)
		assert.Equal(t, EventFraudDetected, event.EventType)
		assert.Equal(t, "FLAGGED", event.Status)
		details := event.Details.(map[string]any)
		assert.Equal(t, "stored", details["stored_hash"])
		assert.Equal(t, "expected", details["expected_hash"])
	})

	t.Run("degraded reload", func(t *testing.T) {
		logger.LogReload("operator-1", 0, errors.New("connection refused"))

		event := lastEvent(t, &buf)
		assert.Equal(t, EventLedgerReloaded, event.EventType)
		assert.Equal(t, "DEGRADED", event.Status)
	})

	t.Run("error", func(t *testing.T) {
		logger.LogError("persist loan", errors.New("disk full"))

		event := lastEvent(t, &buf)
		assert.Equal(t, EventError, event.EventType)
		assert.Nil(t, event.LoanID)
	})
}
