package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/cashbook-app/cashbook-sync/internal/apperrors"
	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveLedgerRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     any
		wantKey string
		wantErr bool
	}{
		{name: "nil resolves to personal", ref: nil, wantKey: "personal"},
		{name: "empty string resolves to personal", ref: "", wantKey: "personal"},
		{name: "literal personal", ref: "personal", wantKey: "personal"},
		{name: "mixed case personal", ref: "Personal", wantKey: "personal"},
		{name: "zero int resolves to personal", ref: 0, wantKey: "personal"},
		{name: "zero string resolves to personal", ref: "0", wantKey: "personal"},
		{name: "numeric string", ref: "7", wantKey: "7"},
		{name: "padded numeric string", ref: " 42 ", wantKey: "42"},
		{name: "int id", ref: 12, wantKey: "12"},
		{name: "int64 id", ref: int64(99), wantKey: "99"},
		{name: "json float id", ref: float64(7), wantKey: "7"},
		{name: "json number id", ref: json.Number("31"), wantKey: "31"},
		{name: "non-numeric string is invalid", ref: "team-budget", wantErr: true},
		{name: "fractional id is invalid", ref: 7.5, wantErr: true},
		{name: "negative id is invalid", ref: -3, wantErr: true},
		{name: "unsupported type is invalid", ref: []string{"7"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, err := domain.ResolveLedgerRef(tt.ref)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidLedgerRef)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantKey, ledger.CacheKey())
			assert.Equal(t, tt.wantKey, ledger.WireFilter().Account)
		})
	}
}

func TestLedger_IsPersonal(t *testing.T) {
	assert.True(t, domain.PersonalLedger().IsPersonal())
	assert.False(t, domain.SharedLedger(7).IsPersonal())

	// Zero value behaves as the personal ledger.
	var zero domain.Ledger
	assert.True(t, zero.IsPersonal())
	assert.Equal(t, "personal", zero.CacheKey())
}
