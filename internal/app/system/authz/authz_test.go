package authz_test

import (
	"testing"

	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_AdminHoldsEverything(t *testing.T) {
	for _, role := range []string{"admin", "superadmin", " Admin "} {
		caps := authz.Resolve(role, nil)
		for _, p := range authz.AllPermissions {
			assert.True(t, caps.Can(p), "role %q should hold %s", role, p)
		}
	}
}

func TestResolve_DosenIsReadOnly(t *testing.T) {
	caps := authz.Resolve("dosen", nil)

	assert.True(t, caps.Can(authz.ViewSurvey))
	assert.True(t, caps.Can(authz.ViewUnit))
	assert.False(t, caps.Can(authz.CreateSurvey))
	assert.False(t, caps.Can(authz.ReorderSurvey))
	assert.False(t, caps.Can(authz.ActivatePeriode))
	assert.False(t, caps.Can(authz.DeleteUnit))
}

func TestResolve_Auditor(t *testing.T) {
	caps := authz.Resolve("auditor", nil)

	assert.True(t, caps.Can(authz.CreateSurvey))
	assert.True(t, caps.Can(authz.ReorderSurvey))
	assert.True(t, caps.Can(authz.UpdateStandarMutu))
	assert.False(t, caps.Can(authz.DeleteSurvey))
	assert.False(t, caps.Can(authz.CreateUnit))
	assert.False(t, caps.Can(authz.ActivatePeriode))
}

func TestResolve_ExtraGrantsAreAdditive(t *testing.T) {
	caps := authz.Resolve("dosen", []string{"update_standar_mutu", "ACTIVATE_PERIODE", "fly_to_moon"})

	assert.True(t, caps.Can(authz.UpdateStandarMutu))
	assert.True(t, caps.Can(authz.ActivatePeriode))
	assert.True(t, caps.Can(authz.ViewDosen), "role grants are kept")
	assert.False(t, caps.Can(authz.Permission("fly_to_moon")), "unknown grants are ignored")
}

func TestResolve_UnknownRoleGrantsNothing(t *testing.T) {
	caps := authz.Resolve("visitor", nil)
	assert.Empty(t, caps.Permissions())
	assert.False(t, caps.Can(authz.ViewSurvey))
}

func TestCapabilities_HasRole(t *testing.T) {
	admin := authz.Resolve("admin", nil)
	super := authz.Resolve("superadmin", nil)

	assert.True(t, admin.HasRole("ADMIN"))
	assert.False(t, admin.HasRole("superadmin"))
	assert.True(t, super.HasRole("admin"), "superadmin satisfies admin")
	assert.True(t, super.HasRole("superadmin"))
	assert.False(t, super.HasRole(""))
}

func TestCapabilities_ZeroValue(t *testing.T) {
	var caps authz.Capabilities
	assert.False(t, caps.Can(authz.ViewSurvey))
	assert.False(t, caps.HasRole("admin"))
}

func TestCapabilities_ImplementsPrincipal(t *testing.T) {
	var p authz.Principal = authz.Resolve("auditor", nil)
	require.NotNil(t, p)
	assert.True(t, p.HasRole("auditor"))
}

func TestParsePermission(t *testing.T) {
	p, ok := authz.ParsePermission(" Delete_Unit ")
	require.True(t, ok)
	assert.Equal(t, authz.DeleteUnit, p)

	_, ok = authz.ParsePermission("delete_everything")
	assert.False(t, ok)
}

func TestPermissions_Sorted(t *testing.T) {
	perms := authz.Resolve("dosen", nil).Permissions()
	for i := 1; i < len(perms); i++ {
		assert.Less(t, string(perms[i-1]), string(perms[i]))
	}
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, authz.IsValidRole("Auditor"))
	assert.False(t, authz.IsValidRole("member"))
}
