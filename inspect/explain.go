package inspect

import goPermit "github.com/MrEthical07/goPermit"

// Decision is the full story behind one allow/deny answer, suitable for
// debug displays and JSON output.
type Decision struct {
	Permission goPermit.Permission `json:"permission"`
	// Allowed is the final decision, identical to HasPermission.
	Allowed bool `json:"allowed"`

	// Granted is the pre-restriction grant view.
	Granted     bool `json:"granted"`
	DirectGrant bool `json:"directGrant"`
	// GrantingRoles lists every assigned role whose definition contains the
	// permission, in role-assignment order.
	GrantingRoles []goPermit.Role `json:"grantingRoles,omitempty"`

	Restricted bool            `json:"restricted"`
	Reason     goPermit.Reason `json:"reason"`
	// RestrictingSector is set when Reason is sector.
	RestrictingSector goPermit.Sector `json:"restrictingSector,omitempty"`
}

// Explain reconstructs the decision for p from the introspection surface.
// The Allowed field always agrees with s.HasPermission(p).
func Explain(s State, p goPermit.Permission) Decision {
	d := Decision{
		Permission: p,
		Allowed:    s.HasPermission(p),
		Restricted: s.IsRestricted(p),
		Reason:     s.RestrictionReason(p),
	}

	for _, direct := range s.Permissions() {
		if direct == p {
			d.DirectGrant = true
			break
		}
	}

	for _, role := range s.Roles() {
		for _, rp := range s.RolePermissions(role) {
			if rp == p {
				d.GrantingRoles = append(d.GrantingRoles, role)
				break
			}
		}
	}

	d.Granted = d.DirectGrant || len(d.GrantingRoles) > 0
	if d.Reason == goPermit.ReasonSector {
		d.RestrictingSector = s.ActiveSector()
	}

	return d
}

// ExplainAll explains every permission in perms, preserving order.
func ExplainAll(s State, perms ...goPermit.Permission) []Decision {
	out := make([]Decision, 0, len(perms))
	for _, p := range perms {
		out = append(out, Explain(s, p))
	}
	return out
}
