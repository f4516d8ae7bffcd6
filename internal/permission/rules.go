package permission

import "slices"

// Wildcard matches any resource or action.
const Wildcard = "*"

// Rule grants actions on a resource. Either side may be Wildcard.
type Rule struct {
	Resource string
	Actions  []string
}

var (
	all       = []string{Wildcard}
	readOnly  = []string{"read"}
	readWrite = []string{"read", "create", "update"}
)

// Rules is the static role→resource→action table.
var Rules = map[BuiltinRole][]Rule{
	RoleSuperAdmin: {
		{Resource: Wildcard, Actions: all},
	},
	RoleFarmOwner: {
		{Resource: Wildcard, Actions: readOnly},
		{Resource: "farms", Actions: all},
		{Resource: "branches", Actions: all},
		{Resource: "reports", Actions: all},
	},
	RoleBranchManager: {
		{Resource: "farms", Actions: readOnly},
		{Resource: "branches", Actions: []string{"read", "update"}},
		{Resource: "cattle", Actions: all},
		{Resource: "milk_production", Actions: all},
		{Resource: "poultry_flocks", Actions: all},
		{Resource: "egg_production", Actions: all},
		{Resource: "feed", Actions: all},
		{Resource: "inventory", Actions: all},
		{Resource: "employees", Actions: readWrite},
		{Resource: "attendance", Actions: all},
		{Resource: "reports", Actions: readOnly},
	},
	RoleFarmManager: {
		{Resource: "farms", Actions: readOnly},
		{Resource: "cattle", Actions: all},
		{Resource: "milk_production", Actions: all},
		{Resource: "health_records", Actions: readOnly},
		{Resource: "poultry_flocks", Actions: all},
		{Resource: "egg_production", Actions: all},
		{Resource: "feed", Actions: all},
		{Resource: "inventory", Actions: []string{"read", "update"}},
		{Resource: "attendance", Actions: []string{"read", "create"}},
	},
	RoleVet: {
		{Resource: "farms", Actions: readOnly},
		{Resource: "cattle", Actions: []string{"read", "update"}},
		{Resource: "health_records", Actions: all},
		{Resource: "poultry_flocks", Actions: []string{"read", "update"}},
		{Resource: "feed", Actions: readOnly},
	},
	RoleAccountant: {
		{Resource: "accounts", Actions: all},
		{Resource: "journal_entries", Actions: []string{"read", "create"}},
		{Resource: "fixed_assets", Actions: all},
		{Resource: "reports", Actions: all},
		{Resource: "payroll", Actions: readOnly},
		{Resource: "orders", Actions: readOnly},
		{Resource: "inventory", Actions: readOnly},
	},
	RoleHRManager: {
		{Resource: "employees", Actions: all},
		{Resource: "payroll", Actions: all},
		{Resource: "attendance", Actions: all},
	},
	RoleSalesManager: {
		{Resource: "products", Actions: all},
		{Resource: "orders", Actions: all},
		{Resource: "customers", Actions: all},
		{Resource: "reports", Actions: readOnly},
	},
	RoleStoreKeeper: {
		{Resource: "inventory", Actions: all},
		{Resource: "feed", Actions: []string{"read", "update"}},
		{Resource: "products", Actions: readOnly},
	},
	RoleFarmWorker: {
		{Resource: "milk_production", Actions: []string{"read", "create"}},
		{Resource: "egg_production", Actions: []string{"read", "create"}},
		{Resource: "attendance", Actions: []string{"create"}},
	},
}

// HasPermission reports whether role may perform action on resource
// according to the static rules. Custom and unknown roles have no static
// rules and are denied.
func HasPermission(role Role, resource, action string) bool {
	b, ok := role.Builtin()
	if !ok {
		return false
	}
	rules := Rules[b]
	for _, r := range rules {
		if r.Resource == Wildcard && slices.Contains(r.Actions, Wildcard) {
			return true
		}
	}
	for _, r := range rules {
		if r.Resource != Wildcard && r.Resource != resource {
			continue
		}
		if slices.Contains(r.Actions, Wildcard) || slices.Contains(r.Actions, action) {
			return true
		}
	}
	return false
}
