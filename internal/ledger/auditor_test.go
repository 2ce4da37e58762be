package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudit(t *testing.T) {
	t.Run("authentic records", func(t *testing.T) {
		records := sealedRecords("A", "B")
		assert.Empty(t, Audit(records))
	})

	t.Run("no records", func(t *testing.T) {
		assert.Empty(t, Audit(nil))
	})

	t.Run("amount changed without rehashing", func(t *testing.T) {
		records := sealedRecords("A", "B")
		h1 := records[1].BlockHash
		records[1].Amount = decimal.NewFromInt(250)

		found := Audit(records)
		require.Len(t, found, 1)
		assert.Equal(t, int64(1), found[0].ID)
		assert.Equal(t, "B", found[0].Borrower)
		assert.True(t, decimal.NewFromInt(250).Equal(found[0].Amount))
		assert.Equal(t, h1, found[0].StoredHash)

		expected := ComputeHash(1, FormatTimestamp(records[1].Timestamp), "B:250.0:"+FormatTimestamp(records[1].Timestamp), records[0].BlockHash)
		assert.Equal(t, expected, found[0].ExpectedHash)
	})

	t.Run("reports in record order", func(t *testing.T) {
		records := sealedRecords("A", "B", "C", "D")
		records[3].Borrower = "Mallory"
		records[1].Borrower = "Eve"

		found := Audit(records)
		require.Len(t, found, 2)
		assert.Equal(t, int64(1), found[0].ID)
		assert.Equal(t, int64(3), found[1].ID)
	})

	t.Run("does not modify records", func(t *testing.T) {
		records := sealedRecords("A", "B")
		records[0].Amount = decimal.NewFromInt(1)
		snapshot := append([]Record(nil), records...)

		Audit(records)
		assert.Equal(t, snapshot, records)
	})
}

// A re-linked middle record is self-consistent, so only chain verification
// notices it.
func TestAuditAndVerifyDisagreeOnLinkage(t *testing.T) {
	records := sealedRecords("A", "B", "C")

	stale := ComputeHash(42, "elsewhere", "other", GenesisPreviousHash)
	records[1] = sealedRecord(1, "B", 200, stale)
	records[2] = sealedRecord(2, "C", 300, records[1].BlockHash)

	assert.Empty(t, Audit(records))

	chain := FromRecords(records)
	assert.False(t, chain.IsValid())

	v, broken := chain.Verify()
	require.True(t, broken)
	assert.Equal(t, 1, v.Position)
	assert.Equal(t, ReasonBrokenLink, v.Reason)
	assert.Equal(t, records[0].BlockHash, v.Expected)
	assert.Equal(t, stale, v.Actual)
}

// Mirrors the amount-update flow: the updated record keeps its old previous
// hash and gets a fresh block hash, so its successor's link goes stale.
func TestAmountUpdateDrift(t *testing.T) {
	records := sealedRecords("A", "B", "C")

	updated := records[1]
	updated.Amount = decimal.NewFromInt(999)
	updated.Timestamp = updated.Timestamp.Add(10 * time.Second)
	updated.BlockHash = ComputeHash(updated.ID, FormatTimestamp(updated.Timestamp), updated.Data(), updated.PreviousHash)
	records[1] = updated

	assert.Empty(t, Audit(records))

	v, broken := FromRecords(records).Verify()
	require.True(t, broken)
	assert.Equal(t, 2, v.Position)
	assert.Equal(t, ReasonBrokenLink, v.Reason)
}
