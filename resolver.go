package goPermit

import "github.com/MrEthical07/goPermit/internal/orderedset"

// Resolver owns a principal's permission, role, restriction, and sector state
// and answers allow/deny queries over it.
//
// The decision rule, in precedence order:
//
//  1. A permission restricted globally is denied, regardless of any grant.
//  2. A permission restricted by the active sector is denied while that
//     sector stays active.
//  3. Otherwise a permission is allowed iff it is granted directly or by
//     any assigned role's definition.
//
// Every operation is total: unknown identifiers are plain strings, missing
// role or sector entries behave as empty, and no method returns an error.
// Every collection a query returns is a copy; callers cannot corrupt
// resolver state through returned values.
//
// Resolver is a plain single-threaded data structure with no locking.
// Callers needing concurrent access serialize externally; the bind package
// provides a concurrency-safe wrapper.
type Resolver struct {
	permissions  *orderedset.Set[Permission]
	roles        *orderedset.Set[Role]
	definitions  map[Role][]Permission
	restrictions *orderedset.Set[Permission]

	sector             Sector
	sectorRestrictions map[Sector]*orderedset.Set[Permission]
}

// New constructs a [Resolver] from cfg. Construction copies every field, so
// later mutation of cfg does not affect the resolver. New never fails; the
// zero Config yields a resolver that denies everything.
func New(cfg Config) *Resolver {
	r := &Resolver{
		permissions:        orderedset.New(cfg.Permissions...),
		roles:              orderedset.New(cfg.Roles...),
		definitions:        make(map[Role][]Permission, len(cfg.RoleDefinitions)),
		restrictions:       orderedset.New(cfg.Restrictions...),
		sector:             cfg.Sector,
		sectorRestrictions: make(map[Sector]*orderedset.Set[Permission], len(cfg.SectorRestrictions)),
	}

	for role, perms := range cfg.RoleDefinitions {
		r.definitions[role] = clonePermissions(perms)
	}
	for sector, perms := range cfg.SectorRestrictions {
		r.sectorRestrictions[sector] = orderedset.New(perms...)
	}

	return r
}

/*
====================================
DECISION QUERIES
====================================
*/

// HasPermission reports whether p is allowed: granted directly or through an
// assigned role, and not blocked by a global or active-sector restriction.
func (r *Resolver) HasPermission(p Permission) bool {
	return r.Granted(p) && !r.IsRestricted(p)
}

// Granted reports whether p is granted directly or by any assigned role's
// definition, before restrictions are applied. This is the raw grant view;
// [Resolver.HasPermission] is the final decision.
func (r *Resolver) Granted(p Permission) bool {
	if r.permissions.Has(p) {
		return true
	}

	granted := false
	r.roles.Range(func(role Role) bool {
		for _, rp := range r.definitions[role] {
			if rp == p {
				granted = true
				return false
			}
		}
		return true
	})
	return granted
}

// Can reports whether every permission in perms is allowed. Calling Can with
// no arguments returns true.
func (r *Resolver) Can(perms ...Permission) bool {
	return r.CanMode(ModeAll, perms...)
}

// CanAny reports whether at least one permission in perms is allowed.
// Calling CanAny with no arguments returns false.
func (r *Resolver) CanAny(perms ...Permission) bool {
	return r.CanMode(ModeAny, perms...)
}

// CanMode combines HasPermission over perms under the given mode.
func (r *Resolver) CanMode(mode Mode, perms ...Permission) bool {
	if mode == ModeAny {
		for _, p := range perms {
			if r.HasPermission(p) {
				return true
			}
		}
		return false
	}
	for _, p := range perms {
		if !r.HasPermission(p) {
			return false
		}
	}
	return true
}

// HasRole reports raw role membership. Role possession is independent of
// whether the role's granted permissions are currently restricted.
func (r *Resolver) HasRole(role Role) bool {
	return r.roles.Has(role)
}

// HasRoles reports whether at least one of the given roles is assigned.
// Note the asymmetry with [Resolver.Can]: the multi-permission default is
// ALL, the multi-role default is ANY.
func (r *Resolver) HasRoles(roles ...Role) bool {
	return r.HasRolesMode(ModeAny, roles...)
}

// HasAllRoles reports whether every one of the given roles is assigned.
func (r *Resolver) HasAllRoles(roles ...Role) bool {
	return r.HasRolesMode(ModeAll, roles...)
}

// HasRolesMode combines HasRole over roles under the given mode.
func (r *Resolver) HasRolesMode(mode Mode, roles ...Role) bool {
	if mode == ModeAny {
		for _, role := range roles {
			if r.roles.Has(role) {
				return true
			}
		}
		return false
	}
	for _, role := range roles {
		if !r.roles.Has(role) {
			return false
		}
	}
	return true
}

/*
====================================
RESTRICTION QUERIES
====================================
*/

// IsRestricted reports whether p is denied by the global restriction list or
// by the active sector's restriction list, independent of whether p would
// otherwise be granted. Presentation layers use it to distinguish "never
// granted" from "granted but policy-blocked".
func (r *Resolver) IsRestricted(p Permission) bool {
	if r.restrictions.Has(p) {
		return true
	}
	if r.sector == NoSector {
		return false
	}
	set, ok := r.sectorRestrictions[r.sector]
	return ok && set.Has(p)
}

// RestrictionReason reports why p is restricted. A global restriction wins
// over a sector restriction when both apply.
func (r *Resolver) RestrictionReason(p Permission) Reason {
	if r.restrictions.Has(p) {
		return ReasonDirect
	}
	if r.sector != NoSector {
		if set, ok := r.sectorRestrictions[r.sector]; ok && set.Has(p) {
			return ReasonSector
		}
	}
	return ReasonNone
}

/*
====================================
INTROSPECTION
====================================
*/

// Permissions returns a copy of the direct permission set. Role-derived
// permissions are not included; see [Resolver.AllPermissions].
func (r *Resolver) Permissions() []Permission {
	return r.permissions.Values()
}

// AllPermissions returns the deduplicated union of the direct permission set
// and every permission granted by every assigned role, in deterministic
// order (direct grants first, then role grants in role-assignment order).
//
// This is the pre-restriction grant view used for introspection and
// debugging; it is NOT filtered by restrictions. A permission can appear
// here while HasPermission returns false for it.
func (r *Resolver) AllPermissions() []Permission {
	union := orderedset.New(r.permissions.Values()...)
	r.roles.Range(func(role Role) bool {
		union.Add(r.definitions[role]...)
		return true
	})
	return union.Values()
}

// Roles returns a copy of the assigned role set.
func (r *Resolver) Roles() []Role {
	return r.roles.Values()
}

// RolePermissions returns a copy of the given role's definition, or nil when
// the role is undefined.
func (r *Resolver) RolePermissions(role Role) []Permission {
	return clonePermissions(r.definitions[role])
}

// RoleDefinitions returns a copy of the full role-definition mapping. Both
// the map and its slices are copies.
func (r *Resolver) RoleDefinitions() map[Role][]Permission {
	out := make(map[Role][]Permission, len(r.definitions))
	for role, perms := range r.definitions {
		out[role] = clonePermissions(perms)
	}
	return out
}

// Restrictions returns a copy of the global restriction list.
func (r *Resolver) Restrictions() []Permission {
	return r.restrictions.Values()
}

// SectorRestrictions returns a copy of the full sector-restriction mapping.
func (r *Resolver) SectorRestrictions() map[Sector][]Permission {
	out := make(map[Sector][]Permission, len(r.sectorRestrictions))
	for sector, set := range r.sectorRestrictions {
		out[sector] = set.Values()
	}
	return out
}

// ActiveSector returns the active sector, or [NoSector].
func (r *Resolver) ActiveSector() Sector {
	return r.sector
}

// Snapshot returns the full resolver state as a [Config]. The snapshot is
// deep-copied and does not reflect later mutations; feeding it back to [New]
// reproduces the current state.
func (r *Resolver) Snapshot() Config {
	cfg := Config{
		Permissions:  r.permissions.Values(),
		Roles:        r.roles.Values(),
		Restrictions: r.restrictions.Values(),
		Sector:       r.sector,
	}

	if len(r.definitions) > 0 {
		cfg.RoleDefinitions = r.RoleDefinitions()
	}
	if len(r.sectorRestrictions) > 0 {
		cfg.SectorRestrictions = r.SectorRestrictions()
	}

	return cfg
}

/*
====================================
MUTATIONS
====================================
*/

// SetPermissions replaces the direct permission set and returns a copy of
// the result. Effective for the very next query.
func (r *Resolver) SetPermissions(perms ...Permission) []Permission {
	r.permissions.Replace(perms...)
	return r.permissions.Values()
}

// AddPermissions unions perms into the direct permission set and returns a
// copy of the result. Adding an already-present permission is a no-op for
// that element.
func (r *Resolver) AddPermissions(perms ...Permission) []Permission {
	r.permissions.Add(perms...)
	return r.permissions.Values()
}

// RemovePermissions subtracts perms from the direct permission set and
// returns a copy of the result. Removing an absent permission is a no-op.
func (r *Resolver) RemovePermissions(perms ...Permission) []Permission {
	r.permissions.Remove(perms...)
	return r.permissions.Values()
}

// SetRoles replaces the assigned role set and returns a copy of the result.
func (r *Resolver) SetRoles(roles ...Role) []Role {
	r.roles.Replace(roles...)
	return r.roles.Values()
}

// AddRoles unions roles into the assigned role set and returns a copy of the
// result.
func (r *Resolver) AddRoles(roles ...Role) []Role {
	r.roles.Add(roles...)
	return r.roles.Values()
}

// RemoveRoles subtracts roles from the assigned role set and returns a copy
// of the result. Removing a role immediately severs its permission
// contribution; its definition is kept for a later re-assignment.
func (r *Resolver) RemoveRoles(roles ...Role) []Role {
	r.roles.Remove(roles...)
	return r.roles.Values()
}

// DefineRole sets the role's definition, replacing any prior one, and
// returns a copy of the stored definition. If the role is not yet assigned
// it is auto-assigned, so defining a role is enough to activate its grants.
func (r *Resolver) DefineRole(role Role, perms ...Permission) []Permission {
	r.definitions[role] = clonePermissions(perms)
	r.roles.Add(role)
	return clonePermissions(perms)
}

// RemoveRoleDefinition deletes the role's definition. The role itself stays
// assigned and grants nothing until redefined.
func (r *Resolver) RemoveRoleDefinition(role Role) {
	delete(r.definitions, role)
}

// SetSector switches the active sector; [NoSector] clears it. Any string is
// accepted, and the switch is effective for the very next query.
func (r *Resolver) SetSector(s Sector) {
	r.sector = s
}

// SetRestrictions replaces the global restriction list wholesale and returns
// a copy of the result.
func (r *Resolver) SetRestrictions(perms ...Permission) []Permission {
	r.restrictions.Replace(perms...)
	return r.restrictions.Values()
}

// SetSectorRestrictions replaces the sector-restriction mapping wholesale.
// The mapping is copied in.
func (r *Resolver) SetSectorRestrictions(m map[Sector][]Permission) {
	r.sectorRestrictions = make(map[Sector]*orderedset.Set[Permission], len(m))
	for sector, perms := range m {
		r.sectorRestrictions[sector] = orderedset.New(perms...)
	}
}
