package enums

type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "super_admin"
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleModerator  AdminRole = "moderator"
	AdminRoleSupport    AdminRole = "support"
	AdminRoleUnknown    AdminRole = "unknown"
)

func ParseAdminRole(raw string) AdminRole {
	switch AdminRole(normalize(raw)) {
	case AdminRoleSuperAdmin:
		return AdminRoleSuperAdmin
	case AdminRoleAdmin:
		return AdminRoleAdmin
	case AdminRoleModerator:
		return AdminRoleModerator
	case AdminRoleSupport:
		return AdminRoleSupport
	default:
		return AdminRoleUnknown
	}
}

func (r AdminRole) Valid() bool {
	return r != AdminRoleUnknown && ParseAdminRole(string(r)) == r
}
