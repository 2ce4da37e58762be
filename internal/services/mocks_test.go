package services

import (
	"context"

	"github.com/ruralpay/loanledger/internal/ledger"
	"github.com/ruralpay/loanledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockLoanStore struct {
	mock.Mock
}

func (m *MockLoanStore) LoanRecords(ctx context.Context) ([]ledger.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Record), args.Error(1)
}

func (m *MockLoanStore) List(ctx context.Context) ([]models.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Loan), args.Error(1)
}

func (m *MockLoanStore) Get(ctx context.Context, id int64) (*models.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *MockLoanStore) Insert(ctx context.Context, loan *models.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanStore) UpdateAmount(ctx context.Context, loan *models.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) Get(ctx context.Context) (*FraudReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FraudReport), args.Error(1)
}

func (m *MockReportCache) Set(ctx context.Context, report *FraudReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockAuditLogger struct {
	mock.Mock
}

func (m *MockAuditLogger) LogLoanCreated(loanID int64, borrower string, amount decimal.Decimal, blockHash string) {
	m.Called(loanID, borrower, amount, blockHash)
}

func (m *MockAuditLogger) LogLoanUpdated(loanID int64, actor string, oldAmount, newAmount decimal.Decimal, blockHash string) {
	m.Called(loanID, actor, oldAmount, newAmount, blockHash)
}

func (m *MockAuditLogger) LogFraud(loanID int64, storedHash, expectedHash string) {
	m.Called(loanID, storedHash, expectedHash)
}

func (m *MockAuditLogger) LogChainInvalid(index int64, reason string) {
	m.Called(index, reason)
}

func (m *MockAuditLogger) LogReload(actor string, blocks int, err error) {
	m.Called(actor, blocks, err)
}

func (m *MockAuditLogger) LogError(operation string, err error) {
	m.Called(operation, err)
}
