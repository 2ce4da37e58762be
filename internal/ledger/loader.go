package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Record is a persisted loan row as the ledger sees it. BlockHash and
// PreviousHash are the block fields captured at the record's last write.
type Record struct {
	ID           int64
	Borrower     string
	Amount       decimal.Decimal
	Timestamp    time.Time
	BlockHash    string
	PreviousHash string
}

// Data returns the canonical payload rebuilt from the record's current fields.
func (r Record) Data() string {
	return Payload(r.Borrower, r.Amount, r.Timestamp)
}

// RecordSource yields stored loan records ordered by ascending ID.
type RecordSource interface {
	LoanRecords(ctx context.Context) ([]Record, error)
}

// LoadResult is the outcome of rebuilding a chain from storage. Chain is never
// nil; when Err is set it is empty and the ledger could not be verified.
type LoadResult struct {
	Chain   *Chain
	Records int
	Err     error
}

func (r LoadResult) OK() bool {
	return r.Err == nil
}

// Load reads every record from src and rebuilds the chain from it. A failing
// source produces an empty chain and the failure in Err; Load never panics on
// a bad store.
func Load(ctx context.Context, src RecordSource) (result LoadResult) {
	result.Chain = NewChain()
	if src == nil {
		result.Err = ErrNoRecordSource
		return result
	}

	defer func() {
		if p := recover(); p != nil {
			result = LoadResult{Chain: NewChain(), Err: fmt.Errorf("loading ledger records: %v", p)}
		}
	}()

	records, err := src.LoanRecords(ctx)
	if err != nil {
		result.Err = fmt.Errorf("loading ledger records: %w", err)
		return result
	}

	result.Chain = FromRecords(records)
	result.Records = len(records)
	return result
}

// FromRecords rebuilds a chain from stored records. Each block keeps the
// record's stored hash as-is; nothing is verified here.
func FromRecords(records []Record) *Chain {
	ordered := make([]Record, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	blocks := make([]Block, 0, len(ordered))
	for _, r := range ordered {
		blocks = append(blocks, RestoreBlock(r.ID, FormatTimestamp(r.Timestamp), r.Data(), r.PreviousHash, r.BlockHash))
	}
	return &Chain{blocks: blocks}
}
