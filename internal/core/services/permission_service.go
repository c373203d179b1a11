package services

import (
	"fmt"

	"github.com/cashbook-app/cashbook-sync/internal/apperrors"
	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
)

// ValidateTransactionAction decides whether user may perform action on the
// given ledger. It is a pure function over the membership record so callers
// can evaluate it against cached memberships while offline.
//
// Personal ledgers are always permitted. For shared ledgers the checks run
// in order: the caller must have a membership, the membership must be
// ACCEPTED, owners bypass the per-member flags entirely, and only then are
// the individual permission flags consulted. Edit distinguishes editing any
// entry from editing only the caller's own entries via txn.CreatedBy.
func ValidateTransactionAction(user domain.User, action domain.MutationAction, txn *domain.Transaction, ledgerKey string, membership *domain.AccountMember) error {
	if ledgerKey == domain.PersonalLedgerKey {
		return nil
	}

	if membership == nil {
		return apperrors.NewPermissionError(string(action), ledgerKey, "you are not a member of this account")
	}
	if membership.Status != domain.StatusAccepted {
		return apperrors.NewPermissionError(string(action), ledgerKey,
			fmt.Sprintf("your membership is %s, not accepted", membership.Status))
	}
	if membership.Role == domain.RoleOwner {
		return nil
	}

	perms := membership.Permissions
	switch action {
	case domain.MutationAdd:
		if !perms.CanAddEntry {
			return apperrors.NewPermissionError(string(action), ledgerKey, "you do not have permission to add entries")
		}
	case domain.MutationEdit:
		if perms.CanEditAllEntries {
			return nil
		}
		if perms.CanEditOwnEntry && txn != nil && txn.CreatedBy == user.ID {
			return nil
		}
		return apperrors.NewPermissionError(string(action), ledgerKey, "you do not have permission to edit this entry")
	case domain.MutationDelete:
		if !perms.CanDeleteEntry {
			return apperrors.NewPermissionError(string(action), ledgerKey, "you do not have permission to delete entries")
		}
	default:
		return apperrors.NewPermissionError(string(action), ledgerKey, fmt.Sprintf("unknown action %q", action))
	}
	return nil
}
