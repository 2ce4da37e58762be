package ledger

import "github.com/shopspring/decimal"

// Discrepancy is a record whose stored hash differs from the hash derived
// from its current fields.
type Discrepancy struct {
	ID           int64           `json:"loan_id"`
	Borrower     string          `json:"borrower"`
	Amount       decimal.Decimal `json:"amount"`
	StoredHash   string          `json:"stored_hash"`
	ExpectedHash string          `json:"expected_hash"`
}

// Audit recomputes every record's hash over its current borrower, amount and
// timestamp and its own stored previous hash, and reports each mismatch in
// record order.
//
// Only self-consistency is checked. A record whose previous hash no longer
// matches its predecessor's block hash passes here; that drift shows up in
// Chain.Verify over a chain loaded from the same records.
func Audit(records []Record) []Discrepancy {
	discrepancies := make([]Discrepancy, 0)

	for _, r := range records {
		expected := ComputeHash(r.ID, FormatTimestamp(r.Timestamp), r.Data(), r.PreviousHash)
		if r.BlockHash == expected {
			continue
		}
		discrepancies = append(discrepancies, Discrepancy{
			ID:           r.ID,
			Borrower:     r.Borrower,
			Amount:       r.Amount,
			StoredHash:   r.BlockHash,
			ExpectedHash: expected,
		})
	}

	return discrepancies
}
