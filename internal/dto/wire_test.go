package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
	"github.com/cashbook-app/cashbook-sync/internal/dto"
)

func decodeWire(t *testing.T, raw string) domain.Transaction {
	t.Helper()
	var w dto.WireTransaction
	require.NoError(t, json.Unmarshal([]byte(raw), &w))
	return w.Normalize()
}

func TestWireTransaction_LedgerFieldFallbacks(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"camelCase accountId", `{"id":"t","accountId":"7"}`, "7"},
		{"numeric accountId", `{"id":"t","accountId":7}`, "7"},
		{"nested account object", `{"id":"t","account":{"id":7}}`, "7"},
		{"snake_case account_id", `{"id":"t","account_id":"7"}`, "7"},
		{"ledgerId", `{"id":"t","ledgerId":"7"}`, "7"},
		{"accountId wins over nested", `{"id":"t","accountId":"7","account":{"id":9}}`, "7"},
		{"absent means personal scope", `{"id":"t"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := decodeWire(t, tt.raw)
			assert.Equal(t, tt.want, txn.LedgerID)
		})
	}
}

func TestWireTransaction_TypeResolution(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.TransactionType
	}{
		{"type income", `{"type":"income","amount":"1"}`, domain.Income},
		{"type synonym in", `{"type":"in","amount":"1"}`, domain.Income},
		{"type synonym credit", `{"type":"CREDIT","amount":"1"}`, domain.Income},
		{"transaction_type debit", `{"transaction_type":"debit","amount":"1"}`, domain.Expense},
		{"type synonym exp", `{"type":"exp","amount":"1"}`, domain.Expense},
		{"is_expense true", `{"is_expense":true,"amount":"1"}`, domain.Expense},
		{"is_expense false", `{"is_expense":false,"amount":"1"}`, domain.Income},
		{"negative amount implies expense", `{"amount":"-5"}`, domain.Expense},
		{"untyped positive defaults to income", `{"amount":"5"}`, domain.Income},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := decodeWire(t, tt.raw)
			assert.Equal(t, tt.want, txn.Type)
			assert.False(t, txn.Amount.IsNegative(), "amounts are stored as magnitudes")
		})
	}
}

func TestWireTransaction_TimestampShapes(t *testing.T) {
	millis := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	txn := decodeWire(t, `{"timestamp":1748779200000}`)
	assert.Equal(t, millis, txn.Timestamp)

	txn = decodeWire(t, `{"timestamp":1748779200}`)
	assert.Equal(t, millis, txn.Timestamp)

	txn = decodeWire(t, `{"date":"2025-06-01"}`)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), txn.Timestamp)

	txn = decodeWire(t, `{"date":"2025-06-01T12:00:00Z"}`)
	assert.Equal(t, millis, txn.Timestamp)
}

func TestWireTransaction_FieldAliases(t *testing.T) {
	txn := decodeWire(t, `{"transaction_id":"t-1","remark":"groceries","mode":"upi","created_by_id":9}`)

	assert.Equal(t, "t-1", txn.ID)
	assert.Equal(t, "groceries", txn.Note)
	assert.Equal(t, "upi", txn.PaymentMode)
	assert.Equal(t, "9", txn.CreatedBy)
}

func TestWireSummary_Normalize(t *testing.T) {
	var w dto.WireSummary
	require.NoError(t, json.Unmarshal([]byte(`{"total_income":"100.50","total_expense":40,"net_total":"60.50","transaction_count":3}`), &w))

	s := w.Normalize()
	assert.True(t, s.TotalIncome.Equal(decimal.RequireFromString("100.50")))
	assert.True(t, s.TotalExpense.Equal(decimal.RequireFromString("40")))
	assert.True(t, s.Balance.Equal(decimal.RequireFromString("60.50")))
	assert.Equal(t, 3, s.TransactionCount)
}

func TestWireSummary_CamelCaseAliases(t *testing.T) {
	var w dto.WireSummary
	require.NoError(t, json.Unmarshal([]byte(`{"totalIncome":"10","totalExpense":"5","balance":"5","count":2}`), &w))

	s := w.Normalize()
	assert.True(t, s.TotalIncome.Equal(decimal.RequireFromString("10")))
	assert.True(t, s.Balance.Equal(decimal.RequireFromString("5")))
	assert.Equal(t, 2, s.TransactionCount)
}

func TestUnwrapList_Envelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare array", `[{"id":"t-1"}]`},
		{"success envelope", `{"success":true,"data":[{"id":"t-1"}]}`},
		{"results envelope", `{"count":1,"results":[{"id":"t-1"}]}`},
		{"transactions envelope", `{"transactions":[{"id":"t-1"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := dto.UnwrapList([]byte(tt.body))
			require.NoError(t, err)

			var items []dto.WireTransaction
			require.NoError(t, json.Unmarshal(raw, &items))
			require.Len(t, items, 1)
			assert.Equal(t, "t-1", items[0].ID.String())
		})
	}
}

func TestUnwrapList_EmptyEnvelope(t *testing.T) {
	raw, err := dto.UnwrapList([]byte(`{"success":true,"data":null}`))
	require.NoError(t, err)

	var items []dto.WireTransaction
	require.NoError(t, json.Unmarshal(raw, &items))
	assert.Empty(t, items)
}

func TestUnwrapObject(t *testing.T) {
	wrapped, err := dto.UnwrapObject([]byte(`{"success":true,"data":{"total_income":"1"}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_income":"1"}`, string(wrapped))

	bare, err := dto.UnwrapObject([]byte(`{"total_income":"1"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_income":"1"}`, string(bare))
}
