package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cashbook-app/cashbook-sync/internal/apperrors"
)

// PersonalLedgerKey is the canonical cache key for the implicit personal ledger.
const PersonalLedgerKey = "personal"

// Ledger identifies either the implicit personal ledger or a shared account.
// The zero value is the personal ledger.
type Ledger struct {
	key string
}

// PersonalLedger returns the implicit personal ledger.
func PersonalLedger() Ledger {
	return Ledger{key: PersonalLedgerKey}
}

// SharedLedger returns the ledger for a shared account id.
func SharedLedger(accountID int64) Ledger {
	return Ledger{key: strconv.FormatInt(accountID, 10)}
}

// CacheKey returns the canonical string identifying this ledger for storage
// and lookup purposes: "personal" or the stringified numeric account id.
func (l Ledger) CacheKey() string {
	if l.key == "" {
		return PersonalLedgerKey
	}
	return l.key
}

// IsPersonal reports whether this is the implicit personal ledger.
func (l Ledger) IsPersonal() bool {
	return l.CacheKey() == PersonalLedgerKey
}

// WireFilter is the filter value sent to the remote gateway with every
// ledger-scoped request.
type WireFilter struct {
	Account string `json:"account"`
}

// WireFilter returns the gateway filter for this ledger.
func (l Ledger) WireFilter() WireFilter {
	return WireFilter{Account: l.CacheKey()}
}

func (l Ledger) String() string {
	return l.CacheKey()
}

// ResolveLedgerRef normalizes a loosely-typed ledger reference into a Ledger.
// nil, the empty string, the literal "personal" and zero all resolve to the
// personal ledger. Anything else must coerce to a decimal integer account id;
// a reference that does not coerce yields ErrInvalidLedgerRef rather than
// silently defaulting to personal, since a wrong default would leak one
// ledger's entries into another's view.
func ResolveLedgerRef(ref any) (Ledger, error) {
	switch v := ref.(type) {
	case nil:
		return PersonalLedger(), nil
	case Ledger:
		return v, nil
	case string:
		return resolveStringRef(v)
	case json.Number:
		return resolveStringRef(v.String())
	case int:
		return resolveIntRef(int64(v))
	case int32:
		return resolveIntRef(int64(v))
	case int64:
		return resolveIntRef(v)
	case float64:
		// JSON numbers decode as float64; only integral values are valid ids.
		if v != float64(int64(v)) {
			return Ledger{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidLedgerRef, ref)
		}
		return resolveIntRef(int64(v))
	default:
		return Ledger{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidLedgerRef, ref)
	}
}

func resolveStringRef(s string) (Ledger, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, PersonalLedgerKey) {
		return PersonalLedger(), nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Ledger{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidLedgerRef, s)
	}
	return resolveIntRef(id)
}

func resolveIntRef(id int64) (Ledger, error) {
	if id == 0 {
		return PersonalLedger(), nil
	}
	if id < 0 {
		return Ledger{}, fmt.Errorf("%w: %d", apperrors.ErrInvalidLedgerRef, id)
	}
	return SharedLedger(id), nil
}
