package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/ruralpay/loanledger/internal/ledger"
	"github.com/ruralpay/loanledger/internal/middleware"
	"github.com/ruralpay/loanledger/internal/services"
)

const authenticMessage = "No tampering detected. All loans are authentic."

// BlocksResponse lists the in-memory chain.
type BlocksResponse struct {
	ChainValid bool           `json:"chainValid"`
	Length     int            `json:"length"`
	Blocks     []ledger.Block `json:"blocks"`
}

// FraudCheckResponse wraps a fraud report with a readable verdict.
type FraudCheckResponse struct {
	*services.FraudReport
	Message string `json:"message"`
}

type LedgerHandler struct {
	service LoanLedger
}

func NewLedgerHandler(service LoanLedger) *LedgerHandler {
	return &LedgerHandler{service: service}
}

// GetBlocks returns the chain
// @Summary Ledger blocks
// @Description The in-memory chain; replaced by an alert when the chain is not trustworthy
// @Tags Ledger
// @Produce json
// @Success 200 {object} BlocksResponse
// @Failure 409 {object} IntegrityAlertResponse
// @Router /ledger/blocks [get]
func (h *LedgerHandler) GetBlocks(w http.ResponseWriter, r *http.Request) {
	if writeAlert(w, h.service) {
		return
	}

	blocks := h.service.Blocks()
	services.SendJSON(w, http.StatusOK, BlocksResponse{
		ChainValid: true,
		Length:     len(blocks),
		Blocks:     blocks,
	})
}

// GetStatus reports chain validity and load state
// @Summary Ledger status
// @Tags Ledger
// @Produce json
// @Success 200 {object} services.LedgerStatus
// @Router /ledger/status [get]
func (h *LedgerHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	services.SendJSON(w, http.StatusOK, h.service.Status())
}

// FraudCheck audits every stored loan against its stored hash
// @Summary Fraud check
// @Description Recompute each loan's hash from its current fields and list loans whose stored hash no longer matches
// @Tags Ledger
// @Produce json
// @Param fresh query bool false "Bypass the cached report"
// @Success 200 {object} FraudCheckResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /ledger/fraud-check [get]
func (h *LedgerHandler) FraudCheck(w http.ResponseWriter, r *http.Request) {
	fresh := false
	if v := r.URL.Query().Get("fresh"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			services.SendErrorResponse(w, "Invalid fresh parameter", http.StatusBadRequest, nil)
			return
		}
		fresh = parsed
	}

	report, err := h.service.FraudCheck(r.Context(), fresh)
	if err != nil {
		sendServiceError(w, "[FRAUD] FraudCheck", err)
		return
	}

	message := authenticMessage
	if !report.Authentic {
		message = strconv.Itoa(len(report.Discrepancies)) + " loan(s) no longer match their stored hash."
	}

	services.SendJSON(w, http.StatusOK, FraudCheckResponse{FraudReport: report, Message: message})
}

// Reload rebuilds the chain from storage
// @Summary Reload ledger
// @Description Rebuild the in-memory chain from the loan store. A failed load leaves an empty, unverified chain.
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.LedgerStatus
// @Failure 401 {object} services.ErrorResponse
// @Failure 503 {object} services.LedgerStatus
// @Router /ledger/reload [post]
func (h *LedgerHandler) Reload(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.OperatorFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	status := h.service.Reload(r.Context(), actor)
	if !status.Verified {
		log.Printf("[LEDGER] Reload by %s left the ledger unverified: %s", actor, status.Warning)
		services.SendJSON(w, http.StatusServiceUnavailable, status)
		return
	}

	services.SendJSON(w, http.StatusOK, status)
}
