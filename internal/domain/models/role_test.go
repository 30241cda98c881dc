package models_test

import (
	"testing"

	"github.com/dalemusser/dealerhub/internal/domain/models"
)

func TestParseRole_Known(t *testing.T) {
	cases := map[string]models.Role{
		"admin":                models.RoleAdmin,
		"  SuperAdmin ":        models.RoleSuperAdmin,
		"RM":                   models.RoleRM,
		"Relationship-Manager": models.RoleRelationshipManager,
		"pos":                  models.RolePOS,
		"\tRMADMIN\n":          models.RoleRMAdmin,
	}
	for in, want := range cases {
		got, ok := models.ParseRole(in)
		if !ok {
			t.Errorf("ParseRole(%q): expected ok", in)
			continue
		}
		if got != want {
			t.Errorf("ParseRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseRole_Unknown(t *testing.T) {
	for _, in := range []string{"", "   ", "guest", "admins", "relationship manager"} {
		if r, ok := models.ParseRole(in); ok {
			t.Errorf("ParseRole(%q) = %q, expected not ok", in, r)
		}
	}
}
