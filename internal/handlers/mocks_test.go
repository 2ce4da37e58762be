package handlers

import (
	"context"

	"github.com/ruralpay/loanledger/internal/ledger"
	"github.com/ruralpay/loanledger/internal/models"
	"github.com/ruralpay/loanledger/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockLoanLedger struct {
	mock.Mock
}

func (m *MockLoanLedger) RequestLoan(ctx context.Context, borrower string, amount decimal.Decimal) (*models.Loan, ledger.Block, error) {
	args := m.Called(ctx, borrower, amount)
	if args.Get(0) == nil {
		return nil, ledger.Block{}, args.Error(2)
	}
	return args.Get(0).(*models.Loan), args.Get(1).(ledger.Block), args.Error(2)
}

func (m *MockLoanLedger) UpdateLoanAmount(ctx context.Context, id int64, newAmount decimal.Decimal, actor string) (*models.Loan, bool, error) {
	args := m.Called(ctx, id, newAmount, actor)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.Loan), args.Bool(1), args.Error(2)
}

func (m *MockLoanLedger) ListLoans(ctx context.Context) ([]models.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Loan), args.Error(1)
}

func (m *MockLoanLedger) GetLoan(ctx context.Context, id int64) (*models.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *MockLoanLedger) Blocks() []ledger.Block {
	return m.Called().Get(0).([]ledger.Block)
}

func (m *MockLoanLedger) Status() services.LedgerStatus {
	return m.Called().Get(0).(services.LedgerStatus)
}

func (m *MockLoanLedger) IntegrityAlert() (services.LedgerStatus, bool) {
	args := m.Called()
	return args.Get(0).(services.LedgerStatus), args.Bool(1)
}

func (m *MockLoanLedger) FraudCheck(ctx context.Context, fresh bool) (*services.FraudReport, error) {
	args := m.Called(ctx, fresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.FraudReport), args.Error(1)
}

func (m *MockLoanLedger) Reload(ctx context.Context, actor string) services.LedgerStatus {
	return m.Called(ctx, actor).Get(0).(services.LedgerStatus)
}

type MockReceiptIssuer struct {
	mock.Mock
}

func (m *MockReceiptIssuer) Receipt(ctx context.Context, loanID int64) (*services.Receipt, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Receipt), args.Error(1)
}
