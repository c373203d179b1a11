package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
)

// FlexID decodes a JSON value that may arrive as a string or a number into
// its string form. Backends disagree on id types across versions.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// wireAccountRef covers the nested account object shape some responses use.
type wireAccountRef struct {
	ID FlexID `json:"id"`
}

// WireTransaction is the tolerant inbound shape for a remote transaction.
// Field aliases cover the shapes observed across backend versions; Normalize
// collapses them into the canonical domain model.
type WireTransaction struct {
	ID    FlexID `json:"id"`
	TxnID FlexID `json:"transaction_id"`

	AccountID      FlexID          `json:"accountId"`
	AccountIDSnake FlexID          `json:"account_id"`
	Account        *wireAccountRef `json:"account"`
	LedgerID       FlexID          `json:"ledgerId"`

	Type            string `json:"type"`
	TransactionType string `json:"transaction_type"`
	IsExpense       *bool  `json:"is_expense"`

	Amount json.Number `json:"amount"`

	CategoryID FlexID `json:"category_id"`
	Category   FlexID `json:"category"`

	Note   string `json:"note"`
	Remark string `json:"remark"`

	Mode        string `json:"mode"`
	PaymentMode string `json:"payment_mode"`

	Timestamp json.Number `json:"timestamp"`
	Date      string      `json:"date"`

	CreatedBy     FlexID `json:"created_by"`
	CreatedByID   FlexID `json:"created_by_id"`
	CreatedByUser FlexID `json:"user"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Normalize converts the wire shape into the canonical transaction. Amounts
// are stored as magnitudes; a negative wire amount on an untyped row implies
// an expense.
func (w WireTransaction) Normalize() domain.Transaction {
	txn := domain.Transaction{
		ID:          firstNonEmpty(w.ID.String(), w.TxnID.String()),
		CategoryID:  firstNonEmpty(w.CategoryID.String(), w.Category.String()),
		Note:        firstNonEmpty(w.Note, w.Remark),
		PaymentMode: firstNonEmpty(w.PaymentMode, w.Mode),
		CreatedBy:   firstNonEmpty(w.CreatedBy.String(), w.CreatedByID.String(), w.CreatedByUser.String()),
	}

	accountRef := ""
	if w.Account != nil {
		accountRef = w.Account.ID.String()
	}
	txn.LedgerID = firstNonEmpty(w.AccountID.String(), accountRef, w.AccountIDSnake.String(), w.LedgerID.String())

	amount := decimal.Zero
	if s := strings.TrimSpace(w.Amount.String()); s != "" {
		if d, err := decimal.NewFromString(s); err == nil {
			amount = d
		}
	}

	rawType := firstNonEmpty(w.Type, w.TransactionType)
	if t, ok := domain.NormalizeTransactionType(rawType); ok {
		txn.Type = t
	} else if w.IsExpense != nil {
		if *w.IsExpense {
			txn.Type = domain.Expense
		} else {
			txn.Type = domain.Income
		}
	} else if amount.IsNegative() {
		txn.Type = domain.Expense
	} else {
		txn.Type = domain.Income
	}
	txn.Amount = amount.Abs()

	txn.Timestamp = w.normalizeTimestamp()
	return txn
}

func (w WireTransaction) normalizeTimestamp() time.Time {
	if s := strings.TrimSpace(w.Timestamp.String()); s != "" {
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
			// Values past the year ~2286 in seconds are epoch millis.
			if ms > 1e12 {
				return time.UnixMilli(ms).UTC()
			}
			return time.Unix(ms, 0).UTC()
		}
	}
	if w.Date != "" {
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, w.Date); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}

// WireSummary is the tolerant inbound shape for a remote summary.
type WireSummary struct {
	TotalIncome      json.Number `json:"total_income"`
	TotalIncomeCamel json.Number `json:"totalIncome"`

	TotalExpense      json.Number `json:"total_expense"`
	TotalExpenseCamel json.Number `json:"totalExpense"`

	NetTotal     json.Number `json:"net_total"`
	Balance      json.Number `json:"balance"`
	BalanceCamel json.Number `json:"netTotal"`

	TransactionCount      *int `json:"transaction_count"`
	TransactionCountCamel *int `json:"transactionCount"`
	Count                 *int `json:"count"`
}

func firstDecimal(vals ...json.Number) decimal.Decimal {
	for _, v := range vals {
		if s := strings.TrimSpace(v.String()); s != "" {
			if d, err := decimal.NewFromString(s); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}

func (w WireSummary) Normalize() domain.Summary {
	s := domain.Summary{
		TotalIncome:  firstDecimal(w.TotalIncome, w.TotalIncomeCamel),
		TotalExpense: firstDecimal(w.TotalExpense, w.TotalExpenseCamel),
		Balance:      firstDecimal(w.NetTotal, w.Balance, w.BalanceCamel),
	}
	for _, c := range []*int{w.TransactionCount, w.TransactionCountCamel, w.Count} {
		if c != nil {
			s.TransactionCount = *c
			break
		}
	}
	return s
}

// UnwrapList decodes the response body shapes backends use for list payloads:
// a bare array, {"success":..,"data":[..]}, {"results":[..]} or
// {"transactions":[..]}. The returned raw message is the array to decode.
func UnwrapList(body []byte) (json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		return json.RawMessage(body), nil
	}
	var envelope struct {
		Data         json.RawMessage `json:"data"`
		Results      json.RawMessage `json:"results"`
		Transactions json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	for _, raw := range []json.RawMessage{envelope.Data, envelope.Results, envelope.Transactions} {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && string(trimmed) != "null" {
			return raw, nil
		}
	}
	return json.RawMessage("[]"), nil
}

// UnwrapObject decodes an object payload that may be wrapped in a
// {"success":..,"data":{..}} envelope.
func UnwrapObject(body []byte) (json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(envelope.Data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return envelope.Data, nil
	}
	return json.RawMessage(body), nil
}
