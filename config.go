package goPermit

// Config is the initial state of a [Resolver]. Every field is optional; the
// zero value is valid and yields a resolver that denies every permission.
//
// Config performs no validation: role names, sector names, and permission
// spellings are free-form strings accepted as-is. Unknown roles grant
// nothing, unknown sectors restrict nothing.
//
// The JSON and YAML tags match the configuration shape accepted by the
// source package loaders.
type Config struct {
	// Permissions are the principal's directly granted permissions.
	Permissions []Permission `json:"permissions,omitempty" yaml:"permissions,omitempty"`

	// Roles are the principal's assigned roles. A role without an entry in
	// RoleDefinitions grants nothing.
	Roles []Role `json:"roles,omitempty" yaml:"roles,omitempty"`

	// RoleDefinitions maps each role to the permissions it grants.
	RoleDefinitions map[Role][]Permission `json:"roleDefinitions,omitempty" yaml:"roleDefinitions,omitempty"`

	// Restrictions are denied regardless of any grant.
	Restrictions []Permission `json:"restrictions,omitempty" yaml:"restrictions,omitempty"`

	// Sector is the initially active sector. Empty means none.
	Sector Sector `json:"sector,omitempty" yaml:"sector,omitempty"`

	// SectorRestrictions maps each sector to the permissions denied while
	// that sector is active.
	SectorRestrictions map[Sector][]Permission `json:"sectorRestrictions,omitempty" yaml:"sectorRestrictions,omitempty"`
}

/*
====================================
CLONE
====================================
*/

// Clone returns a deep copy of the config. Mutating the copy (or slices and
// maps reachable from it) never affects the original.
func (c Config) Clone() Config {
	out := Config{
		Permissions:  clonePermissions(c.Permissions),
		Roles:        cloneRoles(c.Roles),
		Restrictions: clonePermissions(c.Restrictions),
		Sector:       c.Sector,
	}

	if c.RoleDefinitions != nil {
		out.RoleDefinitions = make(map[Role][]Permission, len(c.RoleDefinitions))
		for role, perms := range c.RoleDefinitions {
			out.RoleDefinitions[role] = clonePermissions(perms)
		}
	}

	if c.SectorRestrictions != nil {
		out.SectorRestrictions = make(map[Sector][]Permission, len(c.SectorRestrictions))
		for sector, perms := range c.SectorRestrictions {
			out.SectorRestrictions[sector] = clonePermissions(perms)
		}
	}

	return out
}

func clonePermissions(perms []Permission) []Permission {
	if perms == nil {
		return nil
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

func cloneRoles(roles []Role) []Role {
	if roles == nil {
		return nil
	}
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}
