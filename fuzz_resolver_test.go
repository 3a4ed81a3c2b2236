package goPermit

import (
	"testing"
)

// FuzzResolverTotality exercises the decision path with arbitrary identifier
// strings. Goal: no panics for any input, and HasPermission always agrees
// with the grant/restriction formula recomputed from introspection.
func FuzzResolverTotality(f *testing.F) {
	f.Add("read", "admin", "finance", "delete")
	f.Add("", "", "", "")
	f.Add("read", "read", "read", "read")
	f.Add("a\x00b", "ro\nle", "se\tctor", "\xff\xfe")

	f.Fuzz(func(t *testing.T, perm, role, sector, probe string) {
		r := New(Config{
			Permissions: []Permission{Permission(perm)},
			Roles:       []Role{Role(role)},
			RoleDefinitions: map[Role][]Permission{
				Role(role): {Permission(perm), Permission(probe)},
			},
			Restrictions: []Permission{Permission(probe)},
			Sector:       Sector(sector),
			SectorRestrictions: map[Sector][]Permission{
				Sector(sector): {Permission(perm)},
			},
		})

		p := Permission(probe)
		got := r.HasPermission(p)

		// Recompute the decision from the introspection surface.
		granted := false
		for _, dp := range r.Permissions() {
			if dp == p {
				granted = true
			}
		}
		for _, assigned := range r.Roles() {
			for _, rp := range r.RolePermissions(assigned) {
				if rp == p {
					granted = true
				}
			}
		}
		want := granted && !r.IsRestricted(p)

		if got != want {
			t.Fatalf("HasPermission(%q) = %v, formula says %v", probe, got, want)
		}

		// Mutations must stay total as well.
		r.SetSector(Sector(probe))
		r.DefineRole(Role(probe), p)
		r.RemovePermissions(p)
		_ = r.HasPermission(p)
		_ = r.RestrictionReason(p)
		_ = r.AllPermissions()
	})
}
