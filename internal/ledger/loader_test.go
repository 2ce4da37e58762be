package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRecordSource struct {
	mock.Mock
}

func (m *MockRecordSource) LoanRecords(ctx context.Context) ([]Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

type panickingSource struct{}

func (panickingSource) LoanRecords(context.Context) ([]Record, error) {
	panic("driver exploded")
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("rebuilds the chain", func(t *testing.T) {
		records := sealedRecords("A", "B", "C")
		src := &MockRecordSource{}
		src.On("LoanRecords", ctx).Return(records, nil)

		result := Load(ctx, src)
		require.True(t, result.OK())
		assert.Equal(t, 3, result.Records)
		assert.Equal(t, 3, result.Chain.Len())
		assert.True(t, result.Chain.IsValid())

		for i, b := range result.Chain.Blocks() {
			assert.Equal(t, records[i].ID, b.Index)
			assert.Equal(t, records[i].BlockHash, b.Hash)
			assert.Equal(t, OriginStored, b.Origin)
		}
		src.AssertExpectations(t)
	})

	t.Run("store unavailable", func(t *testing.T) {
		src := &MockRecordSource{}
		src.On("LoanRecords", ctx).Return(nil, errors.New("connection refused"))

		result := Load(ctx, src)
		assert.False(t, result.OK())
		assert.Contains(t, result.Err.Error(), "connection refused")
		require.NotNil(t, result.Chain)
		assert.Equal(t, 0, result.Chain.Len())
	})

	t.Run("nil source", func(t *testing.T) {
		result := Load(ctx, nil)
		assert.ErrorIs(t, result.Err, ErrNoRecordSource)
		assert.Equal(t, 0, result.Chain.Len())
	})

	t.Run("panicking source", func(t *testing.T) {
		result := Load(ctx, panickingSource{})
		assert.Error(t, result.Err)
		assert.Contains(t, result.Err.Error(), "driver exploded")
		assert.Equal(t, 0, result.Chain.Len())
	})
}

func TestFromRecords(t *testing.T) {
	t.Run("trusts stored hashes", func(t *testing.T) {
		records := sealedRecords("A", "B")
		records[1].BlockHash = strings.Repeat("e", HashLength)

		chain := FromRecords(records)
		blocks := chain.Blocks()
		require.Len(t, blocks, 2)
		assert.Equal(t, records[1].BlockHash, blocks[1].Hash)
		assert.False(t, chain.IsValid())
	})

	t.Run("orders by id", func(t *testing.T) {
		records := sealedRecords("A", "B", "C")
		shuffled := []Record{records[2], records[0], records[1]}

		chain := FromRecords(shuffled)
		for i, b := range chain.Blocks() {
			assert.Equal(t, int64(i), b.Index)
		}
		assert.True(t, chain.IsValid())
		assert.Equal(t, records[2], shuffled[0])
	})

	t.Run("appending continues from the stored tip", func(t *testing.T) {
		records := sealedRecords("A", "B")
		chain := FromRecords(records)

		block := chain.AppendEntry(Entry{Borrower: "C", Amount: records[0].Amount, Timestamp: baseTime})
		assert.Equal(t, int64(2), block.Index)
		assert.Equal(t, records[1].BlockHash, block.PreviousHash)
		assert.True(t, chain.IsValid())
	})
}
