package inspect

import (
	"sort"

	goPermit "github.com/MrEthical07/goPermit"
)

// Report is a full state summary for debug displays.
type Report struct {
	ActiveSector goPermit.Sector `json:"activeSector,omitempty"`

	// Direct is the direct permission set.
	Direct []goPermit.Permission `json:"direct,omitempty"`
	// Effective is every permission with its final decision, covering the
	// union of grants and restriction lists.
	Effective []PermissionReport `json:"effective,omitempty"`
	// Roles covers assigned and defined roles, sorted by name.
	Roles []RoleReport `json:"roles,omitempty"`
	// Restrictions is the global restriction list.
	Restrictions []goPermit.Permission `json:"restrictions,omitempty"`
	// SectorRestrictions lists every known sector, active one first, rest
	// sorted by name.
	SectorRestrictions []SectorReport `json:"sectorRestrictions,omitempty"`
}

// PermissionReport decides one permission for the report.
type PermissionReport struct {
	Permission goPermit.Permission `json:"permission"`
	Allowed    bool                `json:"allowed"`
	Reason     goPermit.Reason     `json:"reason"`
}

// RoleReport describes one role's assignment and definition state.
type RoleReport struct {
	Role        goPermit.Role         `json:"role"`
	Assigned    bool                  `json:"assigned"`
	Defined     bool                  `json:"defined"`
	Permissions []goPermit.Permission `json:"permissions,omitempty"`
}

// SectorReport describes one sector's restriction list.
type SectorReport struct {
	Sector       goPermit.Sector       `json:"sector"`
	Active       bool                  `json:"active"`
	Restrictions []goPermit.Permission `json:"restrictions,omitempty"`
}

// Describe summarizes the full state of s. The summary is a copy; it does
// not reflect later mutations.
func Describe(s State) Report {
	r := Report{
		ActiveSector: s.ActiveSector(),
		Direct:       s.Permissions(),
		Restrictions: s.Restrictions(),
	}

	// Every permission mentioned anywhere, granted or merely restricted.
	mentioned := map[goPermit.Permission]struct{}{}
	var order []goPermit.Permission
	mention := func(p goPermit.Permission) {
		if _, ok := mentioned[p]; ok {
			return
		}
		mentioned[p] = struct{}{}
		order = append(order, p)
	}

	for _, p := range s.AllPermissions() {
		mention(p)
	}
	for _, p := range s.Restrictions() {
		mention(p)
	}
	sectorRestrictions := s.SectorRestrictions()
	if active := s.ActiveSector(); active != goPermit.NoSector {
		for _, p := range sectorRestrictions[active] {
			mention(p)
		}
	}

	for _, p := range order {
		r.Effective = append(r.Effective, PermissionReport{
			Permission: p,
			Allowed:    s.HasPermission(p),
			Reason:     s.RestrictionReason(p),
		})
	}

	// Assigned and defined roles, merged and sorted.
	definitions := s.RoleDefinitions()
	assigned := map[goPermit.Role]bool{}
	roleSet := map[goPermit.Role]struct{}{}
	for _, role := range s.Roles() {
		assigned[role] = true
		roleSet[role] = struct{}{}
	}
	for role := range definitions {
		roleSet[role] = struct{}{}
	}

	roles := make([]goPermit.Role, 0, len(roleSet))
	for role := range roleSet {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	for _, role := range roles {
		perms, defined := definitions[role]
		r.Roles = append(r.Roles, RoleReport{
			Role:        role,
			Assigned:    assigned[role],
			Defined:     defined,
			Permissions: perms,
		})
	}

	// Sectors: active first, the rest sorted by name.
	sectors := make([]goPermit.Sector, 0, len(sectorRestrictions))
	for sector := range sectorRestrictions {
		sectors = append(sectors, sector)
	}
	sort.Slice(sectors, func(i, j int) bool {
		active := s.ActiveSector()
		if (sectors[i] == active) != (sectors[j] == active) {
			return sectors[i] == active
		}
		return sectors[i] < sectors[j]
	})

	for _, sector := range sectors {
		r.SectorRestrictions = append(r.SectorRestrictions, SectorReport{
			Sector:       sector,
			Active:       sector == s.ActiveSector(),
			Restrictions: sectorRestrictions[sector],
		})
	}

	return r
}
