package goPermit

import (
	"reflect"
	"sort"
	"testing"
)

func sortedPerms(perms []Permission) []Permission {
	out := append([]Permission(nil), perms...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestZeroConfigDeniesEverything(t *testing.T) {
	r := New(Config{})

	if r.HasPermission("read") {
		t.Fatalf("empty resolver allowed 'read'")
	}
	if r.HasRole("admin") {
		t.Fatalf("empty resolver reported role 'admin'")
	}
	if got := r.Permissions(); len(got) != 0 {
		t.Fatalf("expected no permissions, got %v", got)
	}
	if got := r.AllPermissions(); len(got) != 0 {
		t.Fatalf("expected no effective permissions, got %v", got)
	}
	if r.ActiveSector() != NoSector {
		t.Fatalf("expected no active sector, got %q", r.ActiveSector())
	}
}

func TestHasPermissionDirectAndRoleDerived(t *testing.T) {
	r := New(Config{
		Permissions: []Permission{"read"},
		Roles:       []Role{"editor", "ghost"},
		RoleDefinitions: map[Role][]Permission{
			"editor": {"write", "publish"},
			"viewer": {"view"}, // defined but not assigned
		},
	})

	cases := []struct {
		perm Permission
		want bool
	}{
		{"read", true},    // direct
		{"write", true},   // via editor
		{"publish", true}, // via editor
		{"view", false},   // viewer not assigned
		{"delete", false}, // never mentioned
		{"Read", false},   // case-sensitive
		{"ghost", false},  // role name is not a permission
	}

	for _, tc := range cases {
		if got := r.HasPermission(tc.perm); got != tc.want {
			t.Fatalf("HasPermission(%q) = %v, want %v", tc.perm, got, tc.want)
		}
	}
}

func TestAssignedRoleWithoutDefinitionGrantsNothing(t *testing.T) {
	r := New(Config{Roles: []Role{"mystery"}})

	if !r.HasRole("mystery") {
		t.Fatalf("expected role 'mystery' to be assigned")
	}
	if r.HasPermission("anything") {
		t.Fatalf("undefined role granted a permission")
	}
	if got := r.RolePermissions("mystery"); len(got) != 0 {
		t.Fatalf("expected empty definition, got %v", got)
	}
}

func TestRestrictionPrecedenceIsAbsolute(t *testing.T) {
	r := New(Config{
		Permissions: []Permission{"delete"},
		Roles:       []Role{"admin"},
		RoleDefinitions: map[Role][]Permission{
			"admin": {"delete"},
		},
		Restrictions: []Permission{"delete"},
	})

	if r.HasPermission("delete") {
		t.Fatalf("restricted permission was allowed despite direct and role grants")
	}
	if !r.Granted("delete") {
		t.Fatalf("grant view should be unaffected by restrictions")
	}

	// The grant-side introspection view still contains the permission.
	all := r.AllPermissions()
	found := false
	for _, p := range all {
		if p == "delete" {
			found = true
		}
	}
	if !found {
		t.Fatalf("AllPermissions() = %v, expected it to still contain 'delete'", all)
	}
}

func TestSectorSwitchingFlipsDecisions(t *testing.T) {
	r := New(Config{
		Sector: "finance",
		Roles:  []Role{"admin"},
		RoleDefinitions: map[Role][]Permission{
			"admin": {"delete"},
		},
		SectorRestrictions: map[Sector][]Permission{
			"finance": {"delete"},
			"it":      {},
		},
	})

	if r.HasPermission("delete") {
		t.Fatalf("expected 'delete' denied while finance sector active")
	}

	r.SetSector("it")
	if !r.HasPermission("delete") {
		t.Fatalf("expected 'delete' allowed after switching to it sector")
	}

	r.SetSector("finance")
	if r.HasPermission("delete") {
		t.Fatalf("expected 'delete' denied again after switching back")
	}

	r.SetSector(NoSector)
	if !r.HasPermission("delete") {
		t.Fatalf("expected 'delete' allowed with no active sector")
	}

	// Unknown sector restricts nothing.
	r.SetSector("warehouse")
	if !r.HasPermission("delete") {
		t.Fatalf("expected 'delete' allowed in a sector with no restriction list")
	}
}

func TestCanModes(t *testing.T) {
	r := New(Config{Permissions: []Permission{"read", "write"}})

	if !r.Can("read", "write") {
		t.Fatalf("Can ALL failed for two granted permissions")
	}
	if r.Can("read", "delete") {
		t.Fatalf("Can ALL passed with one missing permission")
	}
	if !r.CanAny("read", "delete") {
		t.Fatalf("CanAny failed with one granted permission")
	}
	if r.CanAny("delete", "purge") {
		t.Fatalf("CanAny passed with no granted permissions")
	}

	// Empty queries: ALL is vacuously true, ANY is false.
	if !r.Can() {
		t.Fatalf("Can() with no arguments should be true")
	}
	if r.CanAny() {
		t.Fatalf("CanAny() with no arguments should be false")
	}
	if !r.CanMode(ModeAll) {
		t.Fatalf("CanMode(ModeAll) with no permissions should be true")
	}
	if r.CanMode(ModeAny) {
		t.Fatalf("CanMode(ModeAny) with no permissions should be false")
	}
}

func TestRoleQueriesIgnoreRestrictions(t *testing.T) {
	r := New(Config{
		Roles: []Role{"admin", "auditor"},
		RoleDefinitions: map[Role][]Permission{
			"admin": {"delete"},
		},
		Restrictions: []Permission{"delete"},
	})

	// Role possession is raw membership, independent of restriction state.
	if !r.HasRole("admin") {
		t.Fatalf("HasRole('admin') should be true even though its grant is restricted")
	}
	if !r.HasRoles("admin", "missing") {
		t.Fatalf("HasRoles defaults to ANY and one role is assigned")
	}
	if r.HasAllRoles("admin", "missing") {
		t.Fatalf("HasAllRoles should fail with one missing role")
	}
	if !r.HasAllRoles("admin", "auditor") {
		t.Fatalf("HasAllRoles should pass with both roles assigned")
	}
	if r.HasRoles() {
		t.Fatalf("HasRoles() with no arguments should be false (ANY default)")
	}
	if !r.HasRolesMode(ModeAll) {
		t.Fatalf("HasRolesMode(ModeAll) with no roles should be true")
	}
}

func TestAddRemoveIdempotence(t *testing.T) {
	r := New(Config{})

	r.AddPermissions("read")
	r.AddPermissions("read")
	if got := r.Permissions(); len(got) != 1 || got[0] != "read" {
		t.Fatalf("expected exactly {'read'}, got %v", got)
	}

	if got := r.RemovePermissions("never-added"); len(got) != 1 {
		t.Fatalf("removing an absent permission should be a no-op, got %v", got)
	}

	r.AddRoles("admin", "admin")
	if got := r.Roles(); len(got) != 1 {
		t.Fatalf("expected exactly {'admin'}, got %v", got)
	}
}

func TestSetPermissionsRoundTrip(t *testing.T) {
	r := New(Config{Permissions: []Permission{"stale"}})

	got := r.SetPermissions("a", "b")
	want := []Permission{"a", "b"}
	if !reflect.DeepEqual(sortedPerms(got), want) {
		t.Fatalf("SetPermissions returned %v, want %v", got, want)
	}
	if !reflect.DeepEqual(sortedPerms(r.Permissions()), want) {
		t.Fatalf("Permissions() = %v, want %v", r.Permissions(), want)
	}
	if r.HasPermission("stale") {
		t.Fatalf("replaced permission still allowed")
	}
}

func TestIsRestrictedAndReason(t *testing.T) {
	r := New(Config{
		Permissions:  []Permission{"export", "delete", "read"},
		Sector:       "finance",
		Restrictions: []Permission{"delete"},
		SectorRestrictions: map[Sector][]Permission{
			"finance": {"export", "delete"},
		},
	})

	if !r.IsRestricted("delete") || !r.IsRestricted("export") {
		t.Fatalf("expected both 'delete' and 'export' restricted")
	}
	if r.IsRestricted("read") {
		t.Fatalf("'read' should not be restricted")
	}

	// IsRestricted is independent of grants: a never-granted permission can
	// still be restricted.
	r.SetRestrictions("delete", "unheard-of")
	if !r.IsRestricted("unheard-of") {
		t.Fatalf("restriction on an ungranted permission should still report restricted")
	}

	if got := r.RestrictionReason("delete"); got != ReasonDirect {
		t.Fatalf("RestrictionReason('delete') = %v, want direct (direct beats sector)", got)
	}
	if got := r.RestrictionReason("export"); got != ReasonSector {
		t.Fatalf("RestrictionReason('export') = %v, want sector", got)
	}
	if got := r.RestrictionReason("read"); got != ReasonNone {
		t.Fatalf("RestrictionReason('read') = %v, want none", got)
	}

	r.SetSector(NoSector)
	if got := r.RestrictionReason("export"); got != ReasonNone {
		t.Fatalf("sector restriction should vanish with no active sector, got %v", got)
	}
}

func TestRemoveRoleSeversContributionImmediately(t *testing.T) {
	r := New(Config{
		Roles: []Role{"admin"},
		RoleDefinitions: map[Role][]Permission{
			"admin": {"delete"},
		},
	})

	if !r.HasPermission("delete") {
		t.Fatalf("expected 'delete' granted through admin")
	}

	r.RemoveRoles("admin")
	if r.HasPermission("delete") {
		t.Fatalf("removing the role should sever its grants without touching its definition")
	}
	if got := r.AllPermissions(); len(got) != 0 {
		t.Fatalf("AllPermissions() = %v after role removal, want empty", got)
	}

	// The definition survives; re-assigning restores the grant.
	r.AddRoles("admin")
	if !r.HasPermission("delete") {
		t.Fatalf("re-assigning the role should restore its grants")
	}
}

func TestDefineRoleAutoAssigns(t *testing.T) {
	r := New(Config{})

	r.DefineRole("editor", "write")
	if !r.HasRole("editor") {
		t.Fatalf("DefineRole should auto-assign an unassigned role")
	}
	if !r.HasPermission("write") {
		t.Fatalf("auto-assigned role should grant immediately")
	}

	// Redefining an already-assigned role replaces the definition and does
	// not duplicate the assignment.
	r.DefineRole("editor", "review")
	if got := r.Roles(); len(got) != 1 {
		t.Fatalf("expected a single role after redefinition, got %v", got)
	}
	if r.HasPermission("write") {
		t.Fatalf("old definition should be fully replaced")
	}
	if !r.HasPermission("review") {
		t.Fatalf("new definition should grant")
	}
}

func TestRemoveRoleDefinitionKeepsAssignment(t *testing.T) {
	r := New(Config{
		Roles: []Role{"editor"},
		RoleDefinitions: map[Role][]Permission{
			"editor": {"write"},
		},
	})

	r.RemoveRoleDefinition("editor")
	if !r.HasRole("editor") {
		t.Fatalf("removing a definition should not unassign the role")
	}
	if r.HasPermission("write") {
		t.Fatalf("role with removed definition should grant nothing")
	}

	r.DefineRole("editor", "write")
	if !r.HasPermission("write") {
		t.Fatalf("redefining should restore the grant")
	}
}

func TestAllPermissionsDeduplicatesAcrossSources(t *testing.T) {
	r := New(Config{
		Permissions: []Permission{"read", "write"},
		Roles:       []Role{"editor", "reviewer"},
		RoleDefinitions: map[Role][]Permission{
			"editor":   {"write", "publish"},
			"reviewer": {"read", "comment"},
		},
	})

	got := sortedPerms(r.AllPermissions())
	want := []Permission{"comment", "publish", "read", "write"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AllPermissions() = %v, want %v", got, want)
	}
}

func TestReturnedCollectionsAreCopies(t *testing.T) {
	r := New(Config{
		Permissions: []Permission{"read"},
		Roles:       []Role{"editor"},
		RoleDefinitions: map[Role][]Permission{
			"editor": {"write"},
		},
		SectorRestrictions: map[Sector][]Permission{
			"finance": {"delete"},
		},
	})

	perms := r.Permissions()
	perms[0] = "corrupted"
	if !r.HasPermission("read") || r.HasPermission("corrupted") {
		t.Fatalf("mutating a returned slice changed resolver state")
	}

	defs := r.RoleDefinitions()
	defs["editor"][0] = "corrupted"
	defs["injected"] = []Permission{"evil"}
	if !r.HasPermission("write") || r.HasPermission("corrupted") {
		t.Fatalf("mutating a returned definitions map changed resolver state")
	}
	if got := r.RolePermissions("injected"); len(got) != 0 {
		t.Fatalf("injecting into a returned map changed resolver state")
	}

	sr := r.SectorRestrictions()
	sr["finance"][0] = "corrupted"
	r.SetSector("finance")
	if !r.IsRestricted("delete") || r.IsRestricted("corrupted") {
		t.Fatalf("mutating returned sector restrictions changed resolver state")
	}

	rolePerms := r.RolePermissions("editor")
	rolePerms[0] = "corrupted"
	if !r.HasPermission("write") {
		t.Fatalf("mutating a returned role definition changed resolver state")
	}
}

func TestConstructionCopiesInput(t *testing.T) {
	cfg := Config{
		Permissions: []Permission{"read"},
		RoleDefinitions: map[Role][]Permission{
			"editor": {"write"},
		},
	}

	r := New(cfg)
	cfg.Permissions[0] = "corrupted"
	cfg.RoleDefinitions["editor"][0] = "corrupted"

	if !r.HasPermission("read") {
		t.Fatalf("mutating the source config after New changed resolver state")
	}
	if got := r.RolePermissions("editor"); len(got) != 1 || got[0] != "write" {
		t.Fatalf("mutating the source config after New changed role definitions: %v", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	original := New(Config{
		Permissions: []Permission{"read", "export"},
		Roles:       []Role{"admin"},
		RoleDefinitions: map[Role][]Permission{
			"admin": {"delete"},
		},
		Restrictions: []Permission{"export"},
		Sector:       "finance",
		SectorRestrictions: map[Sector][]Permission{
			"finance": {"delete"},
		},
	})

	clone := New(original.Snapshot())

	probes := []Permission{"read", "export", "delete", "unknown"}
	for _, p := range probes {
		if got, want := clone.HasPermission(p), original.HasPermission(p); got != want {
			t.Fatalf("snapshot clone disagrees on %q: got %v, want %v", p, got, want)
		}
		if got, want := clone.RestrictionReason(p), original.RestrictionReason(p); got != want {
			t.Fatalf("snapshot clone reason disagrees on %q: got %v, want %v", p, got, want)
		}
	}

	// Snapshot is detached from the source resolver.
	snap := original.Snapshot()
	original.SetPermissions()
	if len(snap.Permissions) != 2 {
		t.Fatalf("snapshot reflected later mutation: %v", snap.Permissions)
	}
}

func TestSetSectorRestrictionsReplacesWholesale(t *testing.T) {
	r := New(Config{
		Permissions: []Permission{"delete", "export"},
		Sector:      "finance",
		SectorRestrictions: map[Sector][]Permission{
			"finance": {"delete"},
		},
	})

	if r.HasPermission("delete") {
		t.Fatalf("expected 'delete' restricted before replacement")
	}

	m := map[Sector][]Permission{"finance": {"export"}}
	r.SetSectorRestrictions(m)

	if !r.HasPermission("delete") {
		t.Fatalf("old sector restriction survived wholesale replacement")
	}
	if r.HasPermission("export") {
		t.Fatalf("new sector restriction not applied")
	}

	// The mapping is copied in.
	m["finance"][0] = "delete"
	if r.HasPermission("export") {
		t.Fatalf("mutating the caller's map changed resolver state")
	}
}

func TestModeAndReasonStrings(t *testing.T) {
	if ModeAll.String() != "all" || ModeAny.String() != "any" {
		t.Fatalf("unexpected Mode strings: %v, %v", ModeAll, ModeAny)
	}
	if ReasonNone.String() != "none" || ReasonDirect.String() != "direct" || ReasonSector.String() != "sector" {
		t.Fatalf("unexpected Reason strings")
	}
	if Mode(99).String() != "unknown" || Reason(99).String() != "unknown" {
		t.Fatalf("out-of-range enum values should stringify as unknown")
	}
}
