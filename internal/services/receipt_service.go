package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// Receipt lets a borrower check later that their loan still carries the hash
// it was recorded with.
type Receipt struct {
	LoanID    int64  `json:"loanId"`
	BlockHash string `json:"blockHash"`
	Payload   string `json:"payload"`
	QRImage   string `json:"qrImage"` // base64 PNG
}

type ReceiptService struct {
	store  LoanStore
	prefix string
	size   int
}

func NewReceiptService(store LoanStore, prefix string, size int) *ReceiptService {
	return &ReceiptService{
		store:  store,
		prefix: prefix,
		size:   size,
	}
}

func (s *ReceiptService) Receipt(ctx context.Context, loanID int64) (*Receipt, error) {
	loan, err := s.store.Get(ctx, loanID)
	if err != nil {
		return nil, err
	}

	payload := fmt.Sprintf("%s:%d:%s", s.prefix, loan.ID, loan.BlockHash)

	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(s.size)); err != nil {
		return nil, err
	}

	return &Receipt{
		LoanID:    loan.ID,
		BlockHash: loan.BlockHash,
		Payload:   payload,
		QRImage:   base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}
