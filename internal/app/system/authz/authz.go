// internal/app/system/authz/authz.go
package authz

import (
	"sort"
	"strings"
)

// Permission is a single capability a principal may hold.
type Permission string

// Survey permissions cover surveys, their questions and their options.
const (
	ViewSurvey    Permission = "view_survey"
	CreateSurvey  Permission = "create_survey"
	UpdateSurvey  Permission = "update_survey"
	DeleteSurvey  Permission = "delete_survey"
	ReorderSurvey Permission = "reorder_survey"
)

const (
	ViewUnit   Permission = "view_unit"
	CreateUnit Permission = "create_unit"
	UpdateUnit Permission = "update_unit"
	DeleteUnit Permission = "delete_unit"
)

const (
	ViewPeriode     Permission = "view_periode"
	CreatePeriode   Permission = "create_periode"
	UpdatePeriode   Permission = "update_periode"
	DeletePeriode   Permission = "delete_periode"
	ActivatePeriode Permission = "activate_periode"
)

const (
	ViewDosen   Permission = "view_dosen"
	CreateDosen Permission = "create_dosen"
	UpdateDosen Permission = "update_dosen"
	DeleteDosen Permission = "delete_dosen"
)

const (
	ViewDocument   Permission = "view_document"
	CreateDocument Permission = "create_document"
	UpdateDocument Permission = "update_document"
	DeleteDocument Permission = "delete_document"
)

// Standar permissions cover standar mutu, indikator and pertanyaan.
const (
	ViewStandarMutu   Permission = "view_standar_mutu"
	CreateStandarMutu Permission = "create_standar_mutu"
	UpdateStandarMutu Permission = "update_standar_mutu"
	DeleteStandarMutu Permission = "delete_standar_mutu"
)

// AllPermissions lists every known permission.
var AllPermissions = []Permission{
	ViewSurvey, CreateSurvey, UpdateSurvey, DeleteSurvey, ReorderSurvey,
	ViewUnit, CreateUnit, UpdateUnit, DeleteUnit,
	ViewPeriode, CreatePeriode, UpdatePeriode, DeletePeriode, ActivatePeriode,
	ViewDosen, CreateDosen, UpdateDosen, DeleteDosen,
	ViewDocument, CreateDocument, UpdateDocument, DeleteDocument,
	ViewStandarMutu, CreateStandarMutu, UpdateStandarMutu, DeleteStandarMutu,
}

var known = func() map[Permission]struct{} {
	m := make(map[Permission]struct{}, len(AllPermissions))
	for _, p := range AllPermissions {
		m[p] = struct{}{}
	}
	return m
}()

// ParsePermission maps a stored permission string to a Permission.
func ParsePermission(s string) (Permission, bool) {
	p := Permission(strings.ToLower(strings.TrimSpace(s)))
	_, ok := known[p]
	return p, ok
}

// Principal is anything that can be authorized: the signed-in session user
// in handlers, or a plain Capabilities value in tests and background work.
type Principal interface {
	HasRole(name string) bool
	Can(p Permission) bool
}

// Capabilities is the resolved permission set of one principal. It is
// computed once per request from the role and any extra grants.
type Capabilities struct {
	role string
	set  map[Permission]struct{}
}

// Resolve builds the capabilities for role plus extra permission strings.
// Unknown roles grant nothing; unknown extra strings are ignored.
func Resolve(role string, extra []string) Capabilities {
	role = NormalizeRole(role)
	c := Capabilities{role: role, set: make(map[Permission]struct{})}
	for _, p := range rolePermissions[role] {
		c.set[p] = struct{}{}
	}
	for _, s := range extra {
		if p, ok := ParsePermission(s); ok {
			c.set[p] = struct{}{}
		}
	}
	return c
}

// HasRole reports whether the principal's role is name (case-insensitive).
// Superadmins also satisfy HasRole("admin").
func (c Capabilities) HasRole(name string) bool {
	name = NormalizeRole(name)
	if name == "" {
		return false
	}
	if c.role == RoleSuperAdmin && name == RoleAdmin {
		return true
	}
	return c.role == name
}

// Can reports whether p was granted.
func (c Capabilities) Can(p Permission) bool {
	_, ok := c.set[p]
	return ok
}

// Role returns the normalized role.
func (c Capabilities) Role() string { return c.role }

// Permissions returns the granted permissions sorted by name.
func (c Capabilities) Permissions() []Permission {
	out := make([]Permission, 0, len(c.set))
	for p := range c.set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
