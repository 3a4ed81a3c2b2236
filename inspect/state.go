package inspect

import goPermit "github.com/MrEthical07/goPermit"

// State is the read-only resolver surface inspect needs. Both
// *goPermit.Resolver and *bind.Store satisfy it.
type State interface {
	HasPermission(p goPermit.Permission) bool
	IsRestricted(p goPermit.Permission) bool
	RestrictionReason(p goPermit.Permission) goPermit.Reason

	Permissions() []goPermit.Permission
	AllPermissions() []goPermit.Permission
	Roles() []goPermit.Role
	RolePermissions(r goPermit.Role) []goPermit.Permission
	RoleDefinitions() map[goPermit.Role][]goPermit.Permission
	Restrictions() []goPermit.Permission
	SectorRestrictions() map[goPermit.Sector][]goPermit.Permission
	ActiveSector() goPermit.Sector
}
