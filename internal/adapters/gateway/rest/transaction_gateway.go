package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
	portssvc "github.com/cashbook-app/cashbook-sync/internal/core/ports/services"
	"github.com/cashbook-app/cashbook-sync/internal/dto"
)

const (
	transactionsPath = "/api/transactions/"
	summaryPath      = "/api/transactions/summary/"
)

// RestTransactionGateway talks to the backend's transaction endpoints. Every
// request carries the ledger filter; every mutating response is expected to
// contain the full updated list for that ledger.
type RestTransactionGateway struct {
	client *Client
}

// NewRestTransactionGateway creates a transaction gateway on the shared client.
func NewRestTransactionGateway(client *Client) portssvc.TransactionGateway {
	return &RestTransactionGateway{client: client}
}

var _ portssvc.TransactionGateway = (*RestTransactionGateway)(nil)

func filterQuery(filter domain.WireFilter) url.Values {
	q := url.Values{}
	q.Set("account", filter.Account)
	return q
}

// decodeList unwraps whichever envelope the backend used and normalizes the
// wire transactions into domain form.
func decodeList(body []byte) ([]domain.Transaction, error) {
	raw, err := dto.UnwrapList(body)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap transaction list: %w", err)
	}

	var wire []dto.WireTransaction
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode transaction list: %w", err)
	}

	txns := make([]domain.Transaction, 0, len(wire))
	for _, w := range wire {
		txns = append(txns, w.Normalize())
	}
	return txns, nil
}

func (g *RestTransactionGateway) List(ctx context.Context, filter domain.WireFilter) ([]domain.Transaction, error) {
	body, err := g.client.do(ctx, http.MethodGet, transactionsPath, filterQuery(filter), nil)
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

func (g *RestTransactionGateway) Create(ctx context.Context, filter domain.WireFilter, txn domain.Transaction) ([]domain.Transaction, error) {
	body, err := g.client.do(ctx, http.MethodPost, transactionsPath, filterQuery(filter), outboundTransaction(txn))
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

func (g *RestTransactionGateway) Update(ctx context.Context, filter domain.WireFilter, id string, txn domain.Transaction) ([]domain.Transaction, error) {
	body, err := g.client.do(ctx, http.MethodPut, transactionsPath+id+"/", filterQuery(filter), outboundTransaction(txn))
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

func (g *RestTransactionGateway) Delete(ctx context.Context, filter domain.WireFilter, id string) ([]domain.Transaction, error) {
	body, err := g.client.do(ctx, http.MethodDelete, transactionsPath+id+"/", filterQuery(filter), nil)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}
	return decodeList(body)
}

func (g *RestTransactionGateway) Summarize(ctx context.Context, filter domain.WireFilter) (*domain.Summary, error) {
	body, err := g.client.do(ctx, http.MethodGet, summaryPath, filterQuery(filter), nil)
	if err != nil {
		return nil, err
	}

	raw, err := dto.UnwrapObject(body)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap summary: %w", err)
	}
	var wire dto.WireSummary
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	summary := wire.Normalize()
	return &summary, nil
}

// outboundTransaction is the shape sent on create and update. The account
// field carries the ledger id so the backend scopes the write.
func outboundTransaction(txn domain.Transaction) map[string]any {
	out := map[string]any{
		"type":      string(txn.Type),
		"amount":    txn.Amount,
		"account":   txn.LedgerID,
		"timestamp": txn.Timestamp.UnixMilli(),
	}
	if txn.ID != "" {
		out["id"] = txn.ID
	}
	if txn.CategoryID != "" {
		out["category_id"] = txn.CategoryID
	}
	if txn.Note != "" {
		out["note"] = txn.Note
	}
	if txn.PaymentMode != "" {
		out["mode"] = txn.PaymentMode
	}
	if txn.CreatedBy != "" {
		out["created_by"] = txn.CreatedBy
	}
	return out
}
