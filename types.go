package goPermit

// Permission is an opaque capability identifier. Permissions are compared by
// exact, case-sensitive string equality; the resolver never normalizes or
// validates them.
type Permission string

// Role names a bundle of permissions assignable to a principal.
type Role string

// Sector names a context (tenant, department) whose restriction list applies
// only while that sector is active. The empty Sector means "no active sector".
type Sector string

// NoSector is the zero Sector, meaning no sector is active.
const NoSector Sector = ""

/*
====================================
QUERY MODE
====================================
*/

// Mode selects how a multi-permission (or multi-role) query combines its
// per-element results.
type Mode uint8

const (
	// ModeAll requires every element to pass. An empty query under ModeAll
	// is vacuously true.
	ModeAll Mode = iota
	// ModeAny requires at least one element to pass. An empty query under
	// ModeAny is false.
	ModeAny
)

// String returns "all" or "any".
func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeAny:
		return "any"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

/*
====================================
RESTRICTION REASON
====================================
*/

// Reason reports why a permission is restricted. When a permission is
// restricted both globally and by the active sector, the global restriction
// wins in reporting.
type Reason uint8

const (
	// ReasonNone means the permission is not restricted.
	ReasonNone Reason = iota
	// ReasonDirect means the permission is in the global restriction list.
	ReasonDirect
	// ReasonSector means the permission is restricted by the active sector
	// (and not globally).
	ReasonSector
)

// String returns "none", "direct", or "sector".
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonDirect:
		return "direct"
	case ReasonSector:
		return "sector"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
