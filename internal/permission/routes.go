package permission

import "sort"

// Routes maps each page of the back office to the built-in roles allowed
// to view it. A path that is not listed is denied to every built-in role.
var Routes = map[string][]BuiltinRole{
	"/": BuiltinRoles,

	"/farms":                  {RoleSuperAdmin, RoleFarmOwner, RoleBranchManager, RoleFarmManager, RoleVet},
	"/dairy/cattle":           {RoleSuperAdmin, RoleFarmOwner, RoleBranchManager, RoleFarmManager, RoleVet},
	"/dairy/milk-production":  {RoleSuperAdmin, RoleFarmOwner, RoleBranchManager, RoleFarmManager, RoleFarmWorker},
	"/dairy/health-records":   {RoleSuperAdmin, RoleBranchManager, RoleFarmManager, RoleVet},
	"/poultry/flocks":         {RoleSuperAdmin, RoleFarmOwner, RoleBranchManager, RoleFarmManager, RoleVet},
	"/poultry/egg-production": {RoleSuperAdmin, RoleFarmOwner, RoleBranchManager, RoleFarmManager, RoleFarmWorker},
	"/poultry/feed":           {RoleSuperAdmin, RoleBranchManager, RoleFarmManager, RoleStoreKeeper},
	"/inventory":              {RoleSuperAdmin, RoleBranchManager, RoleStoreKeeper, RoleAccountant},

	"/finance/accounts":     {RoleSuperAdmin, RoleFarmOwner, RoleAccountant},
	"/finance/journal":      {RoleSuperAdmin, RoleFarmOwner, RoleAccountant},
	"/finance/ledger":       {RoleSuperAdmin, RoleFarmOwner, RoleAccountant},
	"/finance/statements":   {RoleSuperAdmin, RoleFarmOwner, RoleAccountant},
	"/finance/fixed-assets": {RoleSuperAdmin, RoleFarmOwner, RoleAccountant},

	"/hr/employees":  {RoleSuperAdmin, RoleFarmOwner, RoleBranchManager, RoleHRManager},
	"/hr/payroll":    {RoleSuperAdmin, RoleFarmOwner, RoleHRManager, RoleAccountant},
	"/hr/attendance": {RoleSuperAdmin, RoleBranchManager, RoleFarmManager, RoleHRManager},

	"/shop/products":  {RoleSuperAdmin, RoleSalesManager, RoleStoreKeeper},
	"/shop/orders":    {RoleSuperAdmin, RoleFarmOwner, RoleSalesManager, RoleAccountant},
	"/shop/customers": {RoleSuperAdmin, RoleSalesManager},

	"/admin/users":       {RoleSuperAdmin},
	"/admin/roles":       {RoleSuperAdmin},
	"/admin/permissions": {RoleSuperAdmin},
}

var routeIndex = indexRoutes(Routes)

func indexRoutes(routes map[string][]BuiltinRole) map[string]map[BuiltinRole]bool {
	idx := make(map[string]map[BuiltinRole]bool, len(routes))
	for path, roles := range routes {
		set := make(map[BuiltinRole]bool, len(roles))
		for _, r := range roles {
			set[r] = true
		}
		idx[path] = set
	}
	return idx
}

// CanAccessRoute reports whether role may view the exact path according
// to the static route map. It never consults dynamic permissions.
func CanAccessRoute(role Role, path string) bool {
	b, ok := role.Builtin()
	if !ok {
		return false
	}
	return routeIndex[path][b]
}

// RoutePaths returns every path in the static route map, sorted.
func RoutePaths() []string {
	paths := make([]string, 0, len(Routes))
	for p := range Routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
