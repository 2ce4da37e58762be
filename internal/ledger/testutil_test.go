package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// sealedRecord builds a record whose block hash matches its fields.
func sealedRecord(id int64, borrower string, amount int64, previousHash string) Record {
	r := Record{
		ID:           id,
		Borrower:     borrower,
		Amount:       decimal.NewFromInt(amount),
		Timestamp:    baseTime.Add(time.Duration(id) * time.Minute),
		PreviousHash: previousHash,
	}
	r.BlockHash = ComputeHash(r.ID, FormatTimestamp(r.Timestamp), r.Data(), r.PreviousHash)
	return r
}

// sealedRecords builds a correctly linked run of records.
func sealedRecords(borrowers ...string) []Record {
	records := make([]Record, 0, len(borrowers))
	prev := GenesisPreviousHash
	for i, b := range borrowers {
		r := sealedRecord(int64(i), b, int64(i+1)*100, prev)
		records = append(records, r)
		prev = r.BlockHash
	}
	return records
}
