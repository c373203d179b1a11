package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashbook-app/cashbook-sync/internal/apperrors"
	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
)

// --- Transaction DTOs ---

// SaveTransactionRequest defines data for creating or updating a transaction.
type SaveTransactionRequest struct {
	Type        string          `json:"type" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	CategoryID  string          `json:"categoryID"`
	Note        string          `json:"note"`
	PaymentMode string          `json:"paymentMode"`
	Timestamp   *time.Time      `json:"timestamp"`
}

// ToTransaction converts the request to the canonical domain model. The type
// string accepts the same synonyms the wire layer does.
func (r SaveTransactionRequest) ToTransaction(id, ledgerID, userID string) (domain.Transaction, error) {
	txnType, ok := domain.NormalizeTransactionType(r.Type)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("unknown transaction type %q: %w", r.Type, apperrors.ErrValidation)
	}
	ts := time.Now().UTC()
	if r.Timestamp != nil {
		ts = r.Timestamp.UTC()
	}
	return domain.Transaction{
		ID:          id,
		LedgerID:    ledgerID,
		Type:        txnType,
		Amount:      r.Amount.Abs(),
		CategoryID:  r.CategoryID,
		Note:        r.Note,
		PaymentMode: r.PaymentMode,
		Timestamp:   ts,
		CreatedBy:   userID,
	}, nil
}

// TransactionResponse defines data returned for a transaction.
type TransactionResponse struct {
	ID          string          `json:"id"`
	LedgerID    string          `json:"ledgerID"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  string          `json:"categoryID,omitempty"`
	Note        string          `json:"note,omitempty"`
	PaymentMode string          `json:"paymentMode,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	CreatedBy   string          `json:"createdBy,omitempty"`
}

// ToTransactionResponse converts domain.Transaction to DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		LedgerID:    t.LedgerID,
		Type:        string(t.Type),
		Amount:      t.Amount,
		CategoryID:  t.CategoryID,
		Note:        t.Note,
		PaymentMode: t.PaymentMode,
		Timestamp:   t.Timestamp,
		CreatedBy:   t.CreatedBy,
	}
}

// SummaryResponse defines the computed ledger totals.
type SummaryResponse struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transactionCount"`
}

func ToSummaryResponse(s *domain.Summary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:      s.TotalIncome,
		TotalExpense:     s.TotalExpense,
		Balance:          s.Balance,
		TransactionCount: s.TransactionCount,
	}
}

// LedgerStateResponse wraps the published view for a ledger.
type LedgerStateResponse struct {
	LedgerKey       string                `json:"ledgerKey"`
	Transactions    []TransactionResponse `json:"transactions"`
	Summary         SummaryResponse       `json:"summary"`
	Degraded        bool                  `json:"degraded"`
	SummaryMismatch bool                  `json:"summaryMismatch"`
	Provisional     bool                  `json:"provisional"`
	FetchedAt       time.Time             `json:"fetchedAt"`
}

// ToLedgerStateResponse converts domain.LedgerState to DTO.
func ToLedgerStateResponse(st *domain.LedgerState) LedgerStateResponse {
	txns := make([]TransactionResponse, len(st.Transactions))
	for i := range st.Transactions {
		txns[i] = ToTransactionResponse(&st.Transactions[i])
	}
	return LedgerStateResponse{
		LedgerKey:       st.LedgerKey,
		Transactions:    txns,
		Summary:         ToSummaryResponse(&st.Summary),
		Degraded:        st.Degraded,
		SummaryMismatch: st.SummaryMismatch,
		Provisional:     st.Provisional,
		FetchedAt:       st.FetchedAt,
	}
}
