package billing

import (
	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
)

// transitions is the only legal path through the workflow: a draft is sent,
// a sent invoice is paid. Everything else fails.
var transitions = map[string]string{
	entity.StatusDraft: entity.StatusSent,
	entity.StatusSent:  entity.StatusPaid,
}

// Transition validates a requested status change and returns the new status.
//
//   - *domain.InvalidTransitionError for any pair outside DRAFT->SENT->PAID
//     (including no-op requests and unknown statuses).
//   - *domain.EmptyInvoiceError when leaving DRAFT with no items.
//
// Line items are never touched here; CanMutateItems guards that separately.
func Transition(current, requested string, itemCount int) (string, error) {
	if transitions[current] != requested {
		return "", &domain.InvalidTransitionError{From: current, To: requested}
	}
	if current == entity.StatusDraft && itemCount == 0 {
		return "", &domain.EmptyInvoiceError{}
	}
	return requested, nil
}

// CanMutateItems reports whether line items of an invoice in the given
// status may be added, updated or removed. Only drafts are editable.
func CanMutateItems(status string) bool {
	return status == entity.StatusDraft
}

// GuardItemMutation returns an *domain.ImmutableInvoiceError unless the
// invoice is still a draft.
func GuardItemMutation(status string) error {
	if !CanMutateItems(status) {
		return &domain.ImmutableInvoiceError{Status: status}
	}
	return nil
}
