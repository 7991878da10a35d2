package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invoicedesk/invoicedesk-api/internal/domain/access"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
)

func TestAdminIsAllowedEverything(t *testing.T) {
	actions := []access.Action{
		access.ActionRead, access.ActionCreate, access.ActionUpdate, access.ActionDelete,
		access.ActionExport, access.ActionOverrideStatus, access.ActionManageUsers,
	}
	resources := []access.Resource{
		access.ResourceCompany, access.ResourceCustomer, access.ResourceProduct,
		access.ResourceInvoice, access.ResourceUser,
	}
	for _, a := range actions {
		for _, r := range resources {
			assert.True(t, access.Authorize(entity.RoleAdmin, a, r), "%s on %s", a, r)
		}
	}
}

func TestRegularGrants(t *testing.T) {
	tests := []struct {
		action   access.Action
		resource access.Resource
		want     bool
	}{
		{access.ActionRead, access.ResourceCompany, true},
		{access.ActionRead, access.ResourceInvoice, true},
		{access.ActionRead, access.ResourceUser, true},

		{access.ActionCreate, access.ResourceCustomer, true},
		{access.ActionCreate, access.ResourceProduct, true},
		{access.ActionCreate, access.ResourceInvoice, true},
		{access.ActionCreate, access.ResourceCompany, false},
		{access.ActionCreate, access.ResourceUser, false},

		{access.ActionUpdate, access.ResourceInvoice, true},
		{access.ActionUpdate, access.ResourceCompany, false},

		{access.ActionDelete, access.ResourceCompany, false},
		{access.ActionDelete, access.ResourceCustomer, false},
		{access.ActionDelete, access.ResourceProduct, false},
		{access.ActionDelete, access.ResourceInvoice, false},

		{access.ActionExport, access.ResourceInvoice, true},
		{access.ActionExport, access.ResourceCustomer, true},

		{access.ActionOverrideStatus, access.ResourceInvoice, false},
		{access.ActionManageUsers, access.ResourceUser, false},
	}
	for _, tt := range tests {
		got := access.Authorize(entity.RoleRegular, tt.action, tt.resource)
		assert.Equal(t, tt.want, got, "regular: %s on %s", tt.action, tt.resource)
	}
}

func TestUnknownRoleGetsNothing(t *testing.T) {
	assert.False(t, access.Authorize("", access.ActionRead, access.ResourceInvoice))
	assert.False(t, access.Authorize("superuser", access.ActionRead, access.ResourceInvoice))
}
