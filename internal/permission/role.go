package permission

import (
	"strings"

	"github.com/google/uuid"
)

// BuiltinRole is one of the roles compiled into the static tables.
type BuiltinRole string

const (
	RoleSuperAdmin    BuiltinRole = "Super Admin"
	RoleFarmOwner     BuiltinRole = "Farm Owner"
	RoleBranchManager BuiltinRole = "Branch Manager"
	RoleFarmManager   BuiltinRole = "Farm Manager"
	RoleVet           BuiltinRole = "Vet"
	RoleAccountant    BuiltinRole = "Accountant"
	RoleHRManager     BuiltinRole = "HR Manager"
	RoleSalesManager  BuiltinRole = "Sales Manager"
	RoleStoreKeeper   BuiltinRole = "Store Keeper"
	RoleFarmWorker    BuiltinRole = "Farm Worker"
)

// BuiltinRoles lists every built-in role.
var BuiltinRoles = []BuiltinRole{
	RoleSuperAdmin,
	RoleFarmOwner,
	RoleBranchManager,
	RoleFarmManager,
	RoleVet,
	RoleAccountant,
	RoleHRManager,
	RoleSalesManager,
	RoleStoreKeeper,
	RoleFarmWorker,
}

// Role is either a built-in role or a custom role created at runtime by
// an administrator. Custom roles carry the id of their row in the roles
// table; only the dynamic permission tier knows about them.
type Role struct {
	builtin    BuiltinRole
	customID   uuid.UUID
	customName string
}

// Builtin returns the Role for a built-in role.
func Builtin(r BuiltinRole) Role {
	return Role{builtin: r}
}

// Custom returns a custom Role. id may be uuid.Nil when the role's row
// has not been looked up.
func Custom(id uuid.UUID, name string) Role {
	return Role{customID: id, customName: name}
}

// ParseRole maps a role name to a built-in role, ignoring case and
// surrounding space. Any other non-empty name becomes a custom role with
// a nil id.
func ParseRole(name string) Role {
	name = strings.TrimSpace(name)
	for _, b := range BuiltinRoles {
		if strings.EqualFold(name, string(b)) {
			return Builtin(b)
		}
	}
	if name == "" {
		return Role{}
	}
	return Custom(uuid.Nil, name)
}

// Name is the role's display name and its key in the dynamic store.
func (r Role) Name() string {
	if r.builtin != "" {
		return string(r.builtin)
	}
	return r.customName
}

func (r Role) String() string {
	return r.Name()
}

// Builtin returns the built-in role, if r is one.
func (r Role) Builtin() (BuiltinRole, bool) {
	return r.builtin, r.builtin != ""
}

// IsCustom reports whether r is a custom role.
func (r Role) IsCustom() bool {
	return r.builtin == "" && r.customName != ""
}

// CustomID returns the custom role's id (uuid.Nil for built-in roles).
func (r Role) CustomID() uuid.UUID {
	return r.customID
}

// IsZero reports whether r names no role at all.
func (r Role) IsZero() bool {
	return r.builtin == "" && r.customName == ""
}

// IsSuperAdmin reports whether r is the super admin role.
func (r Role) IsSuperAdmin() bool {
	return IsSuperAdmin(r.Name())
}

// IsSuperAdmin reports whether name is "Super Admin", ignoring case.
// Super admins bypass the edit and delete time locks.
func IsSuperAdmin(name string) bool {
	return strings.EqualFold(name, string(RoleSuperAdmin))
}
