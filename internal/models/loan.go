package models

import (
	"time"

	"github.com/ruralpay/loanledger/internal/ledger"
	"github.com/shopspring/decimal"
)

// Loan is a persisted loan row. ID equals the index of the block it was
// written with.
type Loan struct {
	ID           int64           `json:"id" db:"id"`
	Borrower     string          `json:"borrower" db:"borrower"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	Timestamp    time.Time       `json:"timestamp" db:"timestamp"`
	BlockHash    string          `json:"block_hash" db:"block_hash"`
	PreviousHash string          `json:"previous_hash" db:"previous_hash"`
}

// Record returns the loan in the shape the ledger audits.
func (l Loan) Record() ledger.Record {
	return ledger.Record{
		ID:           l.ID,
		Borrower:     l.Borrower,
		Amount:       l.Amount,
		Timestamp:    l.Timestamp,
		BlockHash:    l.BlockHash,
		PreviousHash: l.PreviousHash,
	}
}

// LoanFromBlock builds the row persisted for a freshly appended block.
func LoanFromBlock(block ledger.Block, entry ledger.Entry) Loan {
	return Loan{
		ID:           block.Index,
		Borrower:     entry.Borrower,
		Amount:       entry.Amount,
		Timestamp:    entry.Timestamp,
		BlockHash:    block.Hash,
		PreviousHash: block.PreviousHash,
	}
}

// LoanRequest is the payload for requesting a new loan
// @Description Loan request structure
type LoanRequest struct {
	Borrower string  `json:"borrower" validate:"required,max=100,excludes=:" example:"Asha Devi"` // Borrower name, must not contain ':'
	Amount   float64 `json:"amount" validate:"required,gt=0" example:"5000"`                      // Loan amount
}

// UpdateLoanRequest is the payload for changing a loan amount
// @Description Loan amount update structure
type UpdateLoanRequest struct {
	NewAmount float64 `json:"new_amount" validate:"required,gt=0" example:"5500"` // New loan amount
}
