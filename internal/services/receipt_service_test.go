package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptService_Receipt(t *testing.T) {
	ctx := context.Background()
	loan := sealedLoans("Asha")[0]

	store := &MockLoanStore{}
	store.On("Get", ctx, int64(0)).Return(&loan, nil)
	store.On("Get", ctx, int64(5)).Return(nil, ErrLoanNotFound)

	svc := NewReceiptService(store, "loan", 128)

	t.Run("encodes loan id and hash", func(t *testing.T) {
		receipt, err := svc.Receipt(ctx, 0)
		require.NoError(t, err)

		assert.Equal(t, int64(0), receipt.LoanID)
		assert.Equal(t, loan.BlockHash, receipt.BlockHash)
		assert.Equal(t, "loan:0:"+loan.BlockHash, receipt.Payload)

		raw, err := base64.StdEncoding.DecodeString(receipt.QRImage)
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, 128, img.Bounds().Dx())
	})

	t.Run("unknown loan", func(t *testing.T) {
		_, err := svc.Receipt(ctx, 5)
		assert.ErrorIs(t, err, ErrLoanNotFound)
	})
}
