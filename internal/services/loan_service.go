package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ruralpay/loanledger/internal/config"
	"github.com/ruralpay/loanledger/internal/ledger"
	"github.com/ruralpay/loanledger/internal/models"
	"github.com/shopspring/decimal"
)

// AuditTrail records ledger events.
type AuditTrail interface {
	LogLoanCreated(loanID int64, borrower string, amount decimal.Decimal, blockHash string)
	LogLoanUpdated(loanID int64, actor string, oldAmount, newAmount decimal.Decimal, blockHash string)
	LogFraud(loanID int64, storedHash, expectedHash string)
	LogChainInvalid(index int64, reason string)
	LogReload(actor string, blocks int, err error)
	LogError(operation string, err error)
}

// LedgerStatus summarises the in-memory chain.
type LedgerStatus struct {
	ChainValid bool              `json:"chain_valid"`
	Length     int               `json:"length"`
	HeadHash   string            `json:"head_hash,omitempty"`
	Verified   bool              `json:"verified"`
	Warning    string            `json:"warning,omitempty"`
	Violation  *ledger.Violation `json:"violation,omitempty"`
	LoadedAt   time.Time         `json:"loaded_at"`
}

// LoanService owns the ledger chain and keeps it in step with the loan store.
type LoanService struct {
	store  LoanStore
	chain  *ledger.Chain
	cache  ReportCache
	audit  AuditTrail
	config *config.LedgerConfig
	now    func() time.Time

	// writeMu serialises append+persist, amount updates and reloads.
	writeMu sync.Mutex

	stateMu  sync.RWMutex
	loadErr  error
	loadedAt time.Time
	// reported is the last violation written to the audit trail.
	reported *ledger.Violation

	// reportGen counts cache invalidations. A fraud report is only cached if
	// no write happened while it was being built. cacheMu orders the
	// generation check and Set against the bump and Invalidate.
	cacheMu   sync.Mutex
	reportGen atomic.Uint64
}

// NewLoanService takes ownership of the chain produced by ledger.Load. cache
// may be nil.
func NewLoanService(store LoanStore, loaded ledger.LoadResult, cache ReportCache, audit AuditTrail, cfg *config.LedgerConfig) *LoanService {
	chain := loaded.Chain
	if chain == nil {
		chain = ledger.NewChain()
	}
	if cfg == nil {
		cfg = config.LoadLedgerConfig()
	}

	return &LoanService{
		store:    store,
		chain:    chain,
		cache:    cache,
		audit:    audit,
		config:   cfg,
		now:      time.Now,
		loadErr:  loaded.Err,
		loadedAt: time.Now().UTC(),
	}
}

// RequestLoan appends a block for the loan and persists the loan with the
// block's hashes. A block whose loan could not be stored is dropped again.
func (s *LoanService) RequestLoan(ctx context.Context, borrower string, amount decimal.Decimal) (*models.Loan, ledger.Block, error) {
	borrower = strings.TrimSpace(borrower)
	if borrower == "" || strings.Contains(borrower, ledger.PayloadSeparator) {
		return nil, ledger.Block{}, ErrInvalidBorrower
	}

	amount, err := s.checkAmount(amount)
	if err != nil {
		return nil, ledger.Block{}, err
	}

	if err := s.LoadError(); err != nil {
		return nil, ledger.Block{}, fmt.Errorf("%w: %v", ErrLedgerUnverified, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	entry := ledger.Entry{
		Borrower:  borrower,
		Amount:    amount,
		Timestamp: s.timestamp(),
	}
	block := s.chain.AppendEntry(entry)
	loan := models.LoanFromBlock(block, entry)

	if err := s.store.Insert(ctx, &loan); err != nil {
		s.chain.DiscardLast(block.Hash)
		s.audit.LogError("persist loan", err)
		return nil, ledger.Block{}, fmt.Errorf("failed to persist loan: %w", err)
	}

	log.Printf("[LOAN] Loan %d recorded for %s, amount %s, block %s", loan.ID, loan.Borrower, amount, block.Hash)
	s.audit.LogLoanCreated(loan.ID, loan.Borrower, loan.Amount, block.Hash)
	s.invalidateReport(ctx)

	return &loan, block, nil
}

// UpdateLoanAmount rewrites a loan's amount and timestamp and stores a fresh
// block hash computed over the loan's existing previous hash. The chain is
// not touched, so the next loan's stored link goes stale; a reloaded chain
// reports that through Verify while Audit still finds both loans consistent.
// It returns false when the amount is unchanged.
func (s *LoanService) UpdateLoanAmount(ctx context.Context, id int64, newAmount decimal.Decimal, actor string) (*models.Loan, bool, error) {
	newAmount, err := s.checkAmount(newAmount)
	if err != nil {
		return nil, false, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	loan, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if loan.Amount.Equal(newAmount) {
		return loan, false, nil
	}

	oldAmount := loan.Amount
	loan.Amount = newAmount
	loan.Timestamp = s.timestamp()

	block, err := ledger.NewBlock(loan.ID, ledger.FormatTimestamp(loan.Timestamp), ledger.Payload(loan.Borrower, loan.Amount, loan.Timestamp), loan.PreviousHash)
	if err != nil {
		return nil, false, fmt.Errorf("cannot rebuild block for loan %d: %w", loan.ID, err)
	}
	loan.BlockHash = block.Hash

	if err := s.store.UpdateAmount(ctx, loan); err != nil {
		s.audit.LogError("update loan amount", err)
		return nil, false, err
	}

	log.Printf("[LOAN] Loan %d amount changed from %s to %s by %s", loan.ID, oldAmount, newAmount, actor)
	s.audit.LogLoanUpdated(loan.ID, actor, oldAmount, newAmount, block.Hash)
	s.invalidateReport(ctx)

	return loan, true, nil
}

func (s *LoanService) ListLoans(ctx context.Context) ([]models.Loan, error) {
	return s.store.List(ctx)
}

func (s *LoanService) GetLoan(ctx context.Context, id int64) (*models.Loan, error) {
	return s.store.Get(ctx, id)
}

// Blocks returns a snapshot of the in-memory chain.
func (s *LoanService) Blocks() []ledger.Block {
	return s.chain.Blocks()
}

// LoadError returns the warning from the last load, if it failed.
func (s *LoanService) LoadError() error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.loadErr
}

func (s *LoanService) Status() LedgerStatus {
	s.stateMu.RLock()
	loadErr, loadedAt := s.loadErr, s.loadedAt
	s.stateMu.RUnlock()

	status := LedgerStatus{
		ChainValid: true,
		Length:     s.chain.Len(),
		Verified:   loadErr == nil,
		LoadedAt:   loadedAt,
	}
	if loadErr != nil {
		status.Warning = loadErr.Error()
	}
	if head, ok := s.chain.Last(); ok {
		status.HeadHash = head.Hash
	}
	if v, broken := s.chain.Verify(); broken {
		status.ChainValid = false
		status.Violation = &v
	}
	return status
}

// IntegrityAlert reports whether views of the ledger should be replaced by an
// alert: the chain is broken, or it could not be loaded and the configuration
// treats an unverified ledger as suspect. A violation is audit-logged once,
// not on every call that observes it.
func (s *LoanService) IntegrityAlert() (LedgerStatus, bool) {
	status := s.Status()
	if !status.ChainValid {
		if s.firstReport(*status.Violation) {
			log.Printf("[LEDGER] Chain invalid at index %d: %s", status.Violation.Index, status.Violation.Reason)
			s.audit.LogChainInvalid(status.Violation.Index, status.Violation.Reason)
		}
		return status, true
	}
	s.stateMu.Lock()
	s.reported = nil
	s.stateMu.Unlock()

	if !status.Verified && s.config.AlertOnUnverified {
		return status, true
	}
	return status, false
}

// FraudCheck audits every stored loan against its stored hash. A cached report
// is returned unless fresh is set.
func (s *LoanService) FraudCheck(ctx context.Context, fresh bool) (*FraudReport, error) {
	if s.cache != nil && !fresh {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			log.Printf("[FRAUD] Report cache read failed, auditing directly: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	gen := s.reportGen.Load()
	records, err := s.store.LoanRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read loan records: %w", err)
	}

	discrepancies := ledger.Audit(records)
	for _, d := range discrepancies {
		log.Printf("[FRAUD] Loan %d stored hash %s, expected %s", d.ID, d.StoredHash, d.ExpectedHash)
		s.audit.LogFraud(d.ID, d.StoredHash, d.ExpectedHash)
	}

	report := &FraudReport{
		GeneratedAt:    s.now().UTC(),
		RecordsChecked: len(records),
		Authentic:      len(discrepancies) == 0,
		ChainValid:     s.chain.IsValid(),
		Discrepancies:  discrepancies,
	}

	s.cacheReport(ctx, report, gen)

	return report, nil
}

// Reload rebuilds the chain from the store. A failed load leaves an empty,
// unverified chain and is reported in the status rather than as an error.
func (s *LoanService) Reload(ctx context.Context, actor string) LedgerStatus {
	s.writeMu.Lock()
	result := ledger.Load(ctx, s.store)
	s.chain.ReplaceWith(result.Chain)

	s.stateMu.Lock()
	s.loadErr = result.Err
	s.loadedAt = s.now().UTC()
	s.reported = nil
	s.stateMu.Unlock()
	s.writeMu.Unlock()

	if result.OK() {
		log.Printf("[LEDGER] Reloaded %d blocks from storage", result.Chain.Len())
	} else {
		log.Printf("[LEDGER] Warning: reload failed, ledger is unverified: %v", result.Err)
	}
	s.audit.LogReload(actor, result.Chain.Len(), result.Err)
	s.invalidateReport(ctx)

	return s.Status()
}

func (s *LoanService) checkAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() || amount.GreaterThan(s.config.MaxAmount) {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrAmountOutOfRange, amount)
	}
	return amount, nil
}

// timestamp is truncated to the store's microsecond precision so the hashed
// text survives a round trip through the database.
func (s *LoanService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// firstReport records v and reports whether it differs from the violation
// last written to the audit trail.
func (s *LoanService) firstReport(v ledger.Violation) bool {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if s.reported != nil && *s.reported == v {
		return false
	}
	s.reported = &v
	return true
}

func (s *LoanService) cacheReport(ctx context.Context, report *FraudReport, gen uint64) {
	if s.cache == nil {
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.reportGen.Load() != gen {
		log.Printf("[FRAUD] Loans changed during the audit, report not cached")
		return
	}
	if err := s.cache.Set(ctx, report); err != nil {
		log.Printf("[FRAUD] Failed to cache report: %v", err)
	}
}

func (s *LoanService) invalidateReport(ctx context.Context) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.reportGen.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("[FRAUD] Failed to invalidate cached report: %v", err)
	}
}
