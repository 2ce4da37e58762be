package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ruralpay/loanledger/internal/ledger"
	"github.com/ruralpay/loanledger/internal/models"
)

// LoanStore persists loan rows together with the block fields they were
// written with.
type LoanStore interface {
	ledger.RecordSource
	List(ctx context.Context) ([]models.Loan, error)
	Get(ctx context.Context, id int64) (*models.Loan, error)
	Insert(ctx context.Context, loan *models.Loan) error
	UpdateAmount(ctx context.Context, loan *models.Loan) error
}

type LoanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// List returns every loan ordered by id.
func (r *LoanRepository) List(ctx context.Context) ([]models.Loan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, borrower, amount, timestamp, block_hash, previous_hash
		FROM loans
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying loans: %w", err)
	}
	defer rows.Close()

	loans := make([]models.Loan, 0)
	for rows.Next() {
		var loan models.Loan
		if err := rows.Scan(&loan.ID, &loan.Borrower, &loan.Amount, &loan.Timestamp, &loan.BlockHash, &loan.PreviousHash); err != nil {
			return nil, fmt.Errorf("error scanning loan: %w", err)
		}
		loans = append(loans, loan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading loans: %w", err)
	}

	return loans, nil
}

// LoanRecords returns every loan in ledger form, ordered by id.
func (r *LoanRepository) LoanRecords(ctx context.Context) ([]ledger.Record, error) {
	loans, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]ledger.Record, 0, len(loans))
	for _, loan := range loans {
		records = append(records, loan.Record())
	}
	return records, nil
}

func (r *LoanRepository) Get(ctx context.Context, id int64) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.QueryRowContext(ctx, `
		SELECT id, borrower, amount, timestamp, block_hash, previous_hash
		FROM loans
		WHERE id = $1`, id).Scan(&loan.ID, &loan.Borrower, &loan.Amount, &loan.Timestamp, &loan.BlockHash, &loan.PreviousHash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLoanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching loan %d: %w", id, err)
	}

	return &loan, nil
}

// Insert stores a new loan under the id of the block it was appended with.
func (r *LoanRepository) Insert(ctx context.Context, loan *models.Loan) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO loans (id, borrower, amount, timestamp, block_hash, previous_hash)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		loan.ID, loan.Borrower, loan.Amount, loan.Timestamp, loan.BlockHash, loan.PreviousHash)
	if err != nil {
		return fmt.Errorf("error inserting loan %d: %w", loan.ID, err)
	}
	return nil
}

// UpdateAmount overwrites amount, timestamp and block hash. The previous hash
// is left as stored.
func (r *LoanRepository) UpdateAmount(ctx context.Context, loan *models.Loan) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE loans
		SET amount = $1, timestamp = $2, block_hash = $3
		WHERE id = $4`,
		loan.Amount, loan.Timestamp, loan.BlockHash, loan.ID)
	if err != nil {
		return fmt.Errorf("error updating loan %d: %w", loan.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrLoanNotFound
	}

	return nil
}
