package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ruralpay/loanledger/internal/ledger"
	"github.com/ruralpay/loanledger/internal/middleware"
	"github.com/ruralpay/loanledger/internal/models"
	"github.com/ruralpay/loanledger/internal/services"
	"github.com/shopspring/decimal"
)

// LoanLedger is the part of services.LoanService the HTTP layer drives.
type LoanLedger interface {
	RequestLoan(ctx context.Context, borrower string, amount decimal.Decimal) (*models.Loan, ledger.Block, error)
	UpdateLoanAmount(ctx context.Context, id int64, newAmount decimal.Decimal, actor string) (*models.Loan, bool, error)
	ListLoans(ctx context.Context) ([]models.Loan, error)
	GetLoan(ctx context.Context, id int64) (*models.Loan, error)
	Blocks() []ledger.Block
	Status() services.LedgerStatus
	IntegrityAlert() (services.LedgerStatus, bool)
	FraudCheck(ctx context.Context, fresh bool) (*services.FraudReport, error)
	Reload(ctx context.Context, actor string) services.LedgerStatus
}

type ReceiptIssuer interface {
	Receipt(ctx context.Context, loanID int64) (*services.Receipt, error)
}

// IntegrityAlertResponse replaces ledger views while the chain cannot be
// trusted.
type IntegrityAlertResponse struct {
	ChainValid bool                  `json:"chainValid"`
	Alert      string                `json:"alert"`
	Status     services.LedgerStatus `json:"status"`
}

// LoanResponse is returned when a loan is created or changed.
type LoanResponse struct {
	Success bool          `json:"success"`
	Loan    *models.Loan  `json:"loan"`
	Block   *ledger.Block `json:"block,omitempty"`
	Updated bool          `json:"updated"`
}

type LoanHandler struct {
	service   LoanLedger
	receipts  ReceiptIssuer
	validator *services.ValidationHelper
}

func NewLoanHandler(service LoanLedger, receipts ReceiptIssuer) *LoanHandler {
	return &LoanHandler{
		service:   service,
		receipts:  receipts,
		validator: services.NewValidationHelper(),
	}
}

// RequestLoan records a new loan on the ledger
// @Summary Request a loan
// @Description Append a block for the loan and persist it with the block hashes
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body models.LoanRequest true "Loan request"
// @Success 201 {object} LoanResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 503 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /loans [post]
func (h *LoanHandler) RequestLoan(w http.ResponseWriter, r *http.Request) {
	var req models.LoanRequest
	if err := services.DecodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	loan, block, err := h.service.RequestLoan(r.Context(), req.Borrower, decimal.NewFromFloat(req.Amount))
	if err != nil {
		sendServiceError(w, "[LOAN] RequestLoan", err)
		return
	}

	services.SendJSON(w, http.StatusCreated, LoanResponse{
		Success: true,
		Loan:    loan,
		Block:   &block,
		Updated: true,
	})
}

// ListLoans returns every stored loan
// @Summary List loans
// @Description List stored loans ordered by id; replaced by an alert when the chain is not trustworthy
// @Tags Loans
// @Produce json
// @Success 200 {array} models.Loan
// @Failure 409 {object} IntegrityAlertResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /loans [get]
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	if h.alerted(w) {
		return
	}

	loans, err := h.service.ListLoans(r.Context())
	if err != nil {
		sendServiceError(w, "[LOAN] ListLoans", err)
		return
	}
	if loans == nil {
		loans = []models.Loan{}
	}

	services.SendJSON(w, http.StatusOK, loans)
}

// GetLoan returns one loan
// @Summary Get loan
// @Tags Loans
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} models.Loan
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} IntegrityAlertResponse
// @Router /loans/{id} [get]
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := loanID(w, r)
	if !ok || h.alerted(w) {
		return
	}

	loan, err := h.service.GetLoan(r.Context(), id)
	if err != nil {
		sendServiceError(w, "[LOAN] GetLoan", err)
		return
	}

	services.SendJSON(w, http.StatusOK, loan)
}

// UpdateLoanAmount changes the amount of a stored loan
// @Summary Update loan amount
// @Description Rehash the loan over its stored previous hash. The chain itself is not extended.
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param request body models.UpdateLoanRequest true "New amount"
// @Success 200 {object} LoanResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /loans/{id} [put]
func (h *LoanHandler) UpdateLoanAmount(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.OperatorFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	id, ok := loanID(w, r)
	if !ok {
		return
	}

	var req models.UpdateLoanRequest
	if err := services.DecodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	loan, updated, err := h.service.UpdateLoanAmount(r.Context(), id, decimal.NewFromFloat(req.NewAmount), actor)
	if err != nil {
		sendServiceError(w, "[LOAN] UpdateLoanAmount", err)
		return
	}

	services.SendJSON(w, http.StatusOK, LoanResponse{
		Success: true,
		Loan:    loan,
		Updated: updated,
	})
}

// GetReceipt returns a QR receipt for a loan
// @Summary Loan receipt
// @Description QR code (base64 PNG) encoding the loan id and its block hash
// @Tags Loans
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} services.Receipt
// @Failure 404 {object} services.ErrorResponse
// @Router /loans/{id}/receipt [get]
func (h *LoanHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := loanID(w, r)
	if !ok {
		return
	}

	receipt, err := h.receipts.Receipt(r.Context(), id)
	if err != nil {
		sendServiceError(w, "[LOAN] GetReceipt", err)
		return
	}

	services.SendJSON(w, http.StatusOK, receipt)
}

// alerted writes the integrity alert and reports whether it did.
func (h *LoanHandler) alerted(w http.ResponseWriter) bool {
	return writeAlert(w, h.service)
}

func writeAlert(w http.ResponseWriter, service LoanLedger) bool {
	status, alert := service.IntegrityAlert()
	if !alert {
		return false
	}

	message := "Ledger has been tampered with. Loan data cannot be trusted."
	if status.ChainValid {
		message = "Ledger could not be verified against storage."
	}

	services.SendJSON(w, http.StatusConflict, IntegrityAlertResponse{
		ChainValid: status.ChainValid && status.Verified,
		Alert:      message,
		Status:     status,
	})
	return true
}

func loanID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 0 {
		services.SendErrorResponse(w, "Invalid loan id", http.StatusBadRequest, nil)
		return 0, false
	}
	return id, true
}

func sendServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, services.ErrLoanNotFound):
		services.SendErrorResponse(w, err.Error(), http.StatusNotFound, nil)
	case errors.Is(err, services.ErrInvalidBorrower),
		errors.Is(err, services.ErrAmountOutOfRange):
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, ledger.ErrMalformedPreviousHash),
		errors.Is(err, ledger.ErrNegativeIndex):
		// stored row cannot be rehashed
		services.SendErrorResponse(w, err.Error(), http.StatusUnprocessableEntity, nil)
	case errors.Is(err, services.ErrLedgerUnverified):
		services.SendErrorResponse(w, err.Error(), http.StatusServiceUnavailable, nil)
	default:
		log.Printf("%s - %v", op, err)
		services.SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
	}
}
