package services

import "errors"

var (
	ErrLoanNotFound       = errors.New("loan not found")
	ErrInvalidBorrower    = errors.New("borrower must be non-empty and must not contain ':'")
	ErrAmountOutOfRange   = errors.New("loan amount out of range")
	ErrLedgerUnverified   = errors.New("ledger could not be loaded from storage")
	ErrReportCacheCorrupt = errors.New("cached fraud report is unreadable")
)
