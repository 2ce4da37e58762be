package audit

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventLoanCreated    = "LOAN_CREATED"
	EventLoanUpdated    = "LOAN_UPDATED"
	EventFraudDetected  = "FRAUD_DETECTED"
	EventChainInvalid   = "CHAIN_INVALID"
	EventLedgerReloaded = "LEDGER_RELOADED"
	EventError          = "ERROR"
)

type AuditEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	LoanID    *int64    `json:"loan_id,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	Status    string    `json:"status"`
	Details   any       `json:"details"`
}

type AuditLogger struct {
	logger *log.Logger
}

func NewAuditLogger() *AuditLogger {
	return NewAuditLoggerTo(os.Stderr)
}

// NewAuditLoggerTo writes audit lines to w.
func NewAuditLoggerTo(w io.Writer) *AuditLogger {
	return &AuditLogger{logger: log.New(w, "", log.LstdFlags)}
}

func (a *AuditLogger) LogLoanCreated(loanID int64, borrower string, amount decimal.Decimal, blockHash string) {
	a.log(AuditEvent{
		EventType: EventLoanCreated,
		LoanID:    &loanID,
		Amount:    amount.String(),
		Status:    "SUCCESS",
		Details: map[string]string{
			"borrower":   borrower,
			"block_hash": blockHash,
		},
	})
}

func (a *AuditLogger) LogLoanUpdated(loanID int64, actor string, oldAmount, newAmount decimal.Decimal, blockHash string) {
	a.log(AuditEvent{
		EventType: EventLoanUpdated,
		LoanID:    &loanID,
		Actor:     actor,
		Amount:    newAmount.String(),
		Status:    "SUCCESS",
		Details: map[string]string{
			"old_amount": oldAmount.String(),
			"block_hash": blockHash,
		},
	})
}

func (a *AuditLogger) LogFraud(loanID int64, storedHash, expectedHash string) {
	a.log(AuditEvent{
		EventType: EventFraudDetected,
		LoanID:    &loanID,
		Status:    "FLAGGED",
		Details: map[string]string{
			"stored_hash":   storedHash,
			"expected_hash": expectedHash,
		},
	})
}

func (a *AuditLogger) LogChainInvalid(index int64, reason string) {
	a.log(AuditEvent{
		EventType: EventChainInvalid,
		LoanID:    &index,
		Status:    "FLAGGED",
		Details:   map[string]string{"reason": reason},
	})
}

func (a *AuditLogger) LogReload(actor string, blocks int, err error) {
	event := AuditEvent{
		EventType: EventLedgerReloaded,
		Actor:     actor,
		Status:    "SUCCESS",
		Details:   map[string]int{"blocks": blocks},
	}
	if err != nil {
		event.Status = "DEGRADED"
		event.Details = map[string]string{"error": err.Error()}
	}
	a.log(event)
}

func (a *AuditLogger) LogError(operation string, err error) {
	a.log(AuditEvent{
		EventType: EventError,
		Status:    "FAILED",
		Details: map[string]string{
			"operation": operation,
			"error":     err.Error(),
		},
	})
}

func (a *AuditLogger) log(event AuditEvent) {
	event.EventID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	data, _ := json.Marshal(event)
	a.logger.Printf("AUDIT: %s", string(data))
}
