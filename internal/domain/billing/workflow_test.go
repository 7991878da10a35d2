package billing_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/billing"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
)

func TestTransitionMatrix(t *testing.T) {
	states := []string{
		entity.StatusDraft, entity.StatusSent, entity.StatusPaid, entity.StatusCancelled,
	}
	legal := map[[2]string]bool{
		{entity.StatusDraft, entity.StatusSent}: true,
		{entity.StatusSent, entity.StatusPaid}:  true,
	}

	for _, from := range states {
		for _, to := range states {
			got, err := billing.Transition(from, to, 1)
			if legal[[2]string{from, to}] {
				require.NoError(t, err, "%s -> %s should be legal", from, to)
				assert.Equal(t, to, got)
			} else {
				var te *domain.InvalidTransitionError
				require.Error(t, err, "%s -> %s should be illegal", from, to)
				require.True(t, errors.As(err, &te))
				assert.Equal(t, from, te.From)
				assert.Equal(t, to, te.To)
			}
		}
	}
}

func TestTransitionRefusesEmptyDraft(t *testing.T) {
	_, err := billing.Transition(entity.StatusDraft, entity.StatusSent, 0)
	var ee *domain.EmptyInvoiceError
	require.Error(t, err)
	assert.True(t, errors.As(err, &ee))
}

func TestTransitionUnknownStatus(t *testing.T) {
	_, err := billing.Transition("ARCHIVED", entity.StatusSent, 1)
	var te *domain.InvalidTransitionError
	require.Error(t, err)
	assert.True(t, errors.As(err, &te))
}

func TestCanMutateItems(t *testing.T) {
	assert.True(t, billing.CanMutateItems(entity.StatusDraft))
	assert.False(t, billing.CanMutateItems(entity.StatusSent))
	assert.False(t, billing.CanMutateItems(entity.StatusPaid))
	assert.False(t, billing.CanMutateItems(entity.StatusCancelled))
}

func TestGuardItemMutation(t *testing.T) {
	require.NoError(t, billing.GuardItemMutation(entity.StatusDraft))

	err := billing.GuardItemMutation(entity.StatusSent)
	var ie *domain.ImmutableInvoiceError
	require.Error(t, err)
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, entity.StatusSent, ie.Status)
}
