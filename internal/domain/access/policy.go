// Package access is the role-based permission table. Authorize is a pure
// function over an enumerated action/resource set; handlers call it before
// any state change so failed checks never leave partial mutations behind.
package access

import "github.com/invoicedesk/invoicedesk-api/internal/domain/entity"

// Action is an operation a user may attempt against a resource type.
type Action string

const (
	ActionRead           Action = "read"
	ActionCreate         Action = "create"
	ActionUpdate         Action = "update"
	ActionDelete         Action = "delete"
	ActionExport         Action = "export"
	ActionOverrideStatus Action = "override_status"
	ActionManageUsers    Action = "manage_users"
)

// Resource is an entity type permissions apply to.
type Resource string

const (
	ResourceCompany  Resource = "company"
	ResourceCustomer Resource = "customer"
	ResourceProduct  Resource = "product"
	ResourceInvoice  Resource = "invoice"
	ResourceUser     Resource = "user"
)

type grant struct {
	action   Action
	resource Resource
}

// regularGrants is everything the regular role may do. Admin is not listed:
// it is authorized for all actions on all resources. Regular users read
// everything, maintain customers/products/invoices and export documents,
// but never manage companies or users, never delete, and never bypass the
// status workflow.
var regularGrants = map[grant]bool{
	{ActionRead, ResourceCompany}:  true,
	{ActionRead, ResourceCustomer}: true,
	{ActionRead, ResourceProduct}:  true,
	{ActionRead, ResourceInvoice}:  true,
	{ActionRead, ResourceUser}:     true,

	{ActionCreate, ResourceCustomer}: true,
	{ActionCreate, ResourceProduct}:  true,
	{ActionCreate, ResourceInvoice}:  true,

	{ActionUpdate, ResourceCustomer}: true,
	{ActionUpdate, ResourceProduct}:  true,
	{ActionUpdate, ResourceInvoice}:  true,

	{ActionExport, ResourceCustomer}: true,
	{ActionExport, ResourceProduct}:  true,
	{ActionExport, ResourceInvoice}:  true,
}

// Authorize reports whether a role may perform action on resource.
// Unknown roles get nothing.
func Authorize(role string, action Action, resource Resource) bool {
	switch role {
	case entity.RoleAdmin:
		return true
	case entity.RoleRegular:
		return regularGrants[grant{action, resource}]
	default:
		return false
	}
}
