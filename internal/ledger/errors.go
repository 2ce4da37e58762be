package ledger

import "errors"

var (
	// construction errors
	ErrNegativeIndex         = errors.New("block index must not be negative")
	ErrMalformedPreviousHash = errors.New("previous hash must be the genesis sentinel or a 64-character hex digest")

	// loader errors
	ErrNoRecordSource = errors.New("no record source configured")
)
