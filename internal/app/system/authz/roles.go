// internal/app/system/authz/roles.go
package authz

import "strings"

// Roles.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleAuditor    = "auditor"
	RoleDosen      = "dosen"
)

// Roles lists every assignable role.
var Roles = []string{RoleSuperAdmin, RoleAdmin, RoleAuditor, RoleDosen}

var viewAll = []Permission{ViewSurvey, ViewUnit, ViewPeriode, ViewDosen, ViewDocument, ViewStandarMutu}

// rolePermissions is the base grant of each role. Admins and superadmins
// hold everything; auditors run surveys and maintain standards; dosen read.
var rolePermissions = map[string][]Permission{
	RoleSuperAdmin: AllPermissions,
	RoleAdmin:      AllPermissions,
	RoleAuditor: append(append([]Permission{}, viewAll...),
		CreateSurvey, UpdateSurvey, ReorderSurvey,
		CreateStandarMutu, UpdateStandarMutu,
		CreateDocument, UpdateDocument,
	),
	RoleDosen: viewAll,
}

// NormalizeRole lowercases and trims a stored role string.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// IsValidRole reports whether role is one of Roles.
func IsValidRole(role string) bool {
	role = NormalizeRole(role)
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
