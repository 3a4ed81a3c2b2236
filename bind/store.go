package bind

import (
	"sync"
	"time"

	"github.com/google/uuid"

	goPermit "github.com/MrEthical07/goPermit"
)

const defaultEventBuffer = 16

type options struct {
	eventBuffer int
	counters    bool
}

// Option configures a [Store] at construction time.
type Option func(*options)

// WithEventBuffer sets the default per-subscription event buffer size used
// when [Store.Subscribe] is called with a non-positive buffer.
func WithEventBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.eventBuffer = n
		}
	}
}

// WithCounters enables or disables the store's query and mutation counters.
// Counters are enabled by default; disabling turns every increment into a
// no-op and [Store.Counters] into an empty snapshot.
func WithCounters(enabled bool) Option {
	return func(o *options) {
		o.counters = enabled
	}
}

// Store wraps a [goPermit.Resolver] for concurrent use by one principal or
// session: all access is serialized through an RWMutex, mutation batches
// publish change events, and decision queries are counted.
type Store struct {
	id          uuid.UUID
	counters    *counters
	eventBuffer int

	mu       sync.RWMutex
	resolver *goPermit.Resolver
	subs     map[uuid.UUID]*Subscription
	seq      uint64
	closed   bool
}

// New constructs a Store whose resolver starts from cfg.
func New(cfg goPermit.Config, opts ...Option) *Store {
	o := options{
		eventBuffer: defaultEventBuffer,
		counters:    true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		id:          uuid.New(),
		counters:    newCounters(o.counters),
		eventBuffer: o.eventBuffer,
		resolver:    goPermit.New(cfg),
		subs:        make(map[uuid.UUID]*Subscription),
	}
}

// ID returns the store's instance identifier.
func (s *Store) ID() uuid.UUID {
	return s.id
}

/*
====================================
DECISION QUERIES (counted)
====================================
*/

// HasPermission answers the resolver's decision for p.
func (s *Store) HasPermission(p goPermit.Permission) bool {
	s.mu.RLock()
	allowed := s.resolver.HasPermission(p)
	restricted := !allowed && s.resolver.Granted(p)
	s.mu.RUnlock()

	s.countDecision(allowed, restricted)
	return allowed
}

// Can reports whether every permission in perms is allowed.
func (s *Store) Can(perms ...goPermit.Permission) bool {
	return s.CanMode(goPermit.ModeAll, perms...)
}

// CanAny reports whether at least one permission in perms is allowed.
func (s *Store) CanAny(perms ...goPermit.Permission) bool {
	return s.CanMode(goPermit.ModeAny, perms...)
}

// CanMode combines the decision over perms under the given mode. The whole
// call counts as one query.
func (s *Store) CanMode(mode goPermit.Mode, perms ...goPermit.Permission) bool {
	s.mu.RLock()
	allowed := s.resolver.CanMode(mode, perms...)
	restricted := false
	if !allowed {
		// Attribute the denial to restrictions when a blocked-but-granted
		// permission is what failed the query.
		for _, p := range perms {
			if !s.resolver.HasPermission(p) && s.resolver.Granted(p) {
				restricted = true
				break
			}
		}
	}
	s.mu.RUnlock()

	s.countDecision(allowed, restricted)
	return allowed
}

func (s *Store) countDecision(allowed, restricted bool) {
	s.counters.inc(CounterQueries)
	if allowed {
		s.counters.inc(CounterAllowed)
		return
	}
	s.counters.inc(CounterDenied)
	if restricted {
		s.counters.inc(CounterDeniedByRestriction)
	}
}

/*
====================================
READ PASSTHROUGHS
====================================
*/

// Granted reports the pre-restriction grant view for p.
func (s *Store) Granted(p goPermit.Permission) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.Granted(p)
}

// HasRole reports raw role membership.
func (s *Store) HasRole(r goPermit.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.HasRole(r)
}

// HasRoles reports whether at least one of the given roles is assigned.
func (s *Store) HasRoles(roles ...goPermit.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.HasRoles(roles...)
}

// HasAllRoles reports whether every one of the given roles is assigned.
func (s *Store) HasAllRoles(roles ...goPermit.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.HasAllRoles(roles...)
}

// HasRolesMode combines role membership under the given mode.
func (s *Store) HasRolesMode(mode goPermit.Mode, roles ...goPermit.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.HasRolesMode(mode, roles...)
}

// Permissions returns a copy of the direct permission set.
func (s *Store) Permissions() []goPermit.Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.Permissions()
}

// AllPermissions returns the pre-restriction grant view.
func (s *Store) AllPermissions() []goPermit.Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.AllPermissions()
}

// Roles returns a copy of the assigned role set.
func (s *Store) Roles() []goPermit.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.Roles()
}

// RolePermissions returns a copy of the role's definition.
func (s *Store) RolePermissions(r goPermit.Role) []goPermit.Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.RolePermissions(r)
}

// RoleDefinitions returns a copy of the full role-definition mapping.
func (s *Store) RoleDefinitions() map[goPermit.Role][]goPermit.Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.RoleDefinitions()
}

// Restrictions returns a copy of the global restriction list.
func (s *Store) Restrictions() []goPermit.Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.Restrictions()
}

// SectorRestrictions returns a copy of the sector-restriction mapping.
func (s *Store) SectorRestrictions() map[goPermit.Sector][]goPermit.Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.SectorRestrictions()
}

// ActiveSector returns the active sector, or [goPermit.NoSector].
func (s *Store) ActiveSector() goPermit.Sector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.ActiveSector()
}

// IsRestricted reports whether p is denied by a restriction list.
func (s *Store) IsRestricted(p goPermit.Permission) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.IsRestricted(p)
}

// RestrictionReason reports why p is restricted.
func (s *Store) RestrictionReason(p goPermit.Permission) goPermit.Reason {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.RestrictionReason(p)
}

// Snapshot returns the full configuration state as one consistent copy.
func (s *Store) Snapshot() goPermit.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver.Snapshot()
}

/*
====================================
MUTATIONS
====================================
*/

// Update applies fn to the resolver as one batch: a single write-lock hold
// and, when the batch changed anything, a single published [Event]. Related
// mutations (say, roles plus their definitions) belong in one Update call so
// observers never see them half applied.
//
// fn must not retain the resolver past its return.
func (s *Store) Update(fn func(*goPermit.Resolver)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.resolver.Snapshot()
	fn(s.resolver)
	after := s.resolver.Snapshot()

	s.counters.inc(CounterMutations)
	s.publishLocked(diffFields(before, after))
}

// Apply replaces the entire configuration as one externally visible
// transition. Used by source watchers to push reloaded configs.
func (s *Store) Apply(cfg goPermit.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.resolver.Snapshot()
	s.resolver = goPermit.New(cfg)

	s.counters.inc(CounterMutations)
	s.publishLocked(diffFields(before, s.resolver.Snapshot()))
}

// publishLocked fans one event out to every subscriber without blocking.
// Caller holds the write lock. A batch that changed nothing publishes
// nothing.
func (s *Store) publishLocked(fields Fields) {
	if fields == 0 || s.closed || len(s.subs) == 0 {
		return
	}

	s.seq++
	ev := Event{Seq: s.seq, Fields: fields, Time: time.Now()}

	for _, sub := range s.subs {
		if sub.offer(ev) {
			s.counters.inc(CounterEventsPublished)
		} else {
			s.counters.inc(CounterEventsDropped)
		}
	}
}

// SetPermissions replaces the direct permission set.
func (s *Store) SetPermissions(perms ...goPermit.Permission) []goPermit.Permission {
	var out []goPermit.Permission
	s.Update(func(r *goPermit.Resolver) { out = r.SetPermissions(perms...) })
	return out
}

// AddPermissions unions perms into the direct permission set.
func (s *Store) AddPermissions(perms ...goPermit.Permission) []goPermit.Permission {
	var out []goPermit.Permission
	s.Update(func(r *goPermit.Resolver) { out = r.AddPermissions(perms...) })
	return out
}

// RemovePermissions subtracts perms from the direct permission set.
func (s *Store) RemovePermissions(perms ...goPermit.Permission) []goPermit.Permission {
	var out []goPermit.Permission
	s.Update(func(r *goPermit.Resolver) { out = r.RemovePermissions(perms...) })
	return out
}

// SetRoles replaces the assigned role set.
func (s *Store) SetRoles(roles ...goPermit.Role) []goPermit.Role {
	var out []goPermit.Role
	s.Update(func(r *goPermit.Resolver) { out = r.SetRoles(roles...) })
	return out
}

// AddRoles unions roles into the assigned role set.
func (s *Store) AddRoles(roles ...goPermit.Role) []goPermit.Role {
	var out []goPermit.Role
	s.Update(func(r *goPermit.Resolver) { out = r.AddRoles(roles...) })
	return out
}

// RemoveRoles subtracts roles from the assigned role set.
func (s *Store) RemoveRoles(roles ...goPermit.Role) []goPermit.Role {
	var out []goPermit.Role
	s.Update(func(r *goPermit.Resolver) { out = r.RemoveRoles(roles...) })
	return out
}

// DefineRole sets a role's definition, auto-assigning the role if absent.
func (s *Store) DefineRole(role goPermit.Role, perms ...goPermit.Permission) []goPermit.Permission {
	var out []goPermit.Permission
	s.Update(func(r *goPermit.Resolver) { out = r.DefineRole(role, perms...) })
	return out
}

// RemoveRoleDefinition deletes a role's definition, keeping the assignment.
func (s *Store) RemoveRoleDefinition(role goPermit.Role) {
	s.Update(func(r *goPermit.Resolver) { r.RemoveRoleDefinition(role) })
}

// SetSector switches the active sector.
func (s *Store) SetSector(sector goPermit.Sector) {
	s.Update(func(r *goPermit.Resolver) { r.SetSector(sector) })
}

// SetRestrictions replaces the global restriction list.
func (s *Store) SetRestrictions(perms ...goPermit.Permission) []goPermit.Permission {
	var out []goPermit.Permission
	s.Update(func(r *goPermit.Resolver) { out = r.SetRestrictions(perms...) })
	return out
}

// SetSectorRestrictions replaces the sector-restriction mapping.
func (s *Store) SetSectorRestrictions(m map[goPermit.Sector][]goPermit.Permission) {
	s.Update(func(r *goPermit.Resolver) { r.SetSectorRestrictions(m) })
}

/*
====================================
SUBSCRIPTIONS
====================================
*/

// Subscribe registers an event feed. A non-positive buffer uses the store's
// default. On a closed store the returned subscription's channel is already
// closed.
func (s *Store) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = s.eventBuffer
	}

	sub := &Subscription{
		id: uuid.New(),
		ch: make(chan Event, buffer),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		close(sub.ch)
		return sub
	}

	s.subs[sub.id] = sub
	return sub
}

// Unsubscribe removes the subscription and closes its channel. Unknown IDs
// are ignored.
func (s *Store) Unsubscribe(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[id]
	if !ok {
		return
	}
	delete(s.subs, id)
	close(sub.ch)
}

// Close tears down event fan-out: every subscription channel is closed and
// later mutations publish nothing. Queries and mutations themselves keep
// working; Close releases observers, not the resolver.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for id, sub := range s.subs {
		delete(s.subs, id)
		close(sub.ch)
	}
}

/*
====================================
COUNTERS
====================================
*/

// Counter returns one counter's current value.
func (s *Store) Counter(id CounterID) uint64 {
	return s.counters.value(id)
}

// Counters returns a point-in-time copy of every counter.
func (s *Store) Counters() CountersSnapshot {
	return s.counters.snapshot()
}
