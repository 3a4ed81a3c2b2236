package bind

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	goPermit "github.com/MrEthical07/goPermit"
)

// Fields is a bitmask naming which parts of the store's configuration a
// mutation batch touched.
type Fields uint8

const (
	// FieldPermissions marks a change to the direct permission set.
	FieldPermissions Fields = 1 << iota
	// FieldRoles marks a change to the assigned role set.
	FieldRoles
	// FieldRoleDefinitions marks a change to the role-definition mapping.
	FieldRoleDefinitions
	// FieldRestrictions marks a change to the global restriction list.
	FieldRestrictions
	// FieldSector marks a change of the active sector.
	FieldSector
	// FieldSectorRestrictions marks a change to the sector-restriction
	// mapping.
	FieldSectorRestrictions
)

// Has reports whether every bit in f is set.
func (fs Fields) Has(f Fields) bool {
	return fs&f == f
}

// String lists the set fields, comma separated, or "none".
func (fs Fields) String() string {
	if fs == 0 {
		return "none"
	}

	names := []struct {
		f    Fields
		name string
	}{
		{FieldPermissions, "permissions"},
		{FieldRoles, "roles"},
		{FieldRoleDefinitions, "roleDefinitions"},
		{FieldRestrictions, "restrictions"},
		{FieldSector, "sector"},
		{FieldSectorRestrictions, "sectorRestrictions"},
	}

	var parts []string
	for _, n := range names {
		if fs.Has(n.f) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, ",")
}

// Event announces that a mutation batch changed the store's configuration.
// It carries no state; subscribers re-query the store.
type Event struct {
	// Seq increases by one per published batch. A gap in the sequence
	// observed by a subscriber means events were dropped for it.
	Seq uint64
	// Fields names what changed.
	Fields Fields
	// Time is when the batch was applied.
	Time time.Time
}

// Subscription is one subscriber's event feed. Obtain with
// [Store.Subscribe]; release with [Store.Unsubscribe] or [Store.Close].
type Subscription struct {
	id      uuid.UUID
	ch      chan Event
	dropped atomic.Uint64
}

// ID identifies the subscription for [Store.Unsubscribe].
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Events returns the subscriber's channel. The channel is closed by
// [Store.Unsubscribe] and [Store.Close].
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Dropped returns how many events were discarded because this
// subscription's buffer was full.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// offer delivers without blocking; a full buffer drops the event.
func (s *Subscription) offer(ev Event) bool {
	select {
	case s.ch <- ev:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// diffFields compares two snapshots field by field.
func diffFields(before, after goPermit.Config) Fields {
	var fs Fields

	if !equalPermissions(before.Permissions, after.Permissions) {
		fs |= FieldPermissions
	}
	if !equalRoles(before.Roles, after.Roles) {
		fs |= FieldRoles
	}
	if !equalDefinitions(before.RoleDefinitions, after.RoleDefinitions) {
		fs |= FieldRoleDefinitions
	}
	if !equalPermissions(before.Restrictions, after.Restrictions) {
		fs |= FieldRestrictions
	}
	if before.Sector != after.Sector {
		fs |= FieldSector
	}
	if !equalSectorRestrictions(before.SectorRestrictions, after.SectorRestrictions) {
		fs |= FieldSectorRestrictions
	}

	return fs
}

func equalPermissions(a, b []goPermit.Permission) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalRoles(a, b []goPermit.Role) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalDefinitions(a, b map[goPermit.Role][]goPermit.Permission) bool {
	if len(a) != len(b) {
		return false
	}
	for role, perms := range a {
		other, ok := b[role]
		if !ok || !equalPermissions(perms, other) {
			return false
		}
	}
	return true
}

func equalSectorRestrictions(a, b map[goPermit.Sector][]goPermit.Permission) bool {
	if len(a) != len(b) {
		return false
	}
	for sector, perms := range a {
		other, ok := b[sector]
		if !ok || !equalPermissions(perms, other) {
			return false
		}
	}
	return true
}
