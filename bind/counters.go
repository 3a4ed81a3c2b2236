package bind

import (
	"io"
	"strconv"
	"strings"
	"sync/atomic"
)

// CounterID identifies one of the store's in-process counters.
type CounterID uint8

const (
	// CounterQueries counts every decision query (HasPermission, Can,
	// CanAny, CanMode).
	CounterQueries CounterID = iota
	// CounterAllowed counts decision queries that returned true.
	CounterAllowed
	// CounterDenied counts decision queries that returned false.
	CounterDenied
	// CounterDeniedByRestriction counts denials where the permission was
	// granted but blocked by a global or sector restriction.
	CounterDeniedByRestriction
	// CounterMutations counts applied mutation batches.
	CounterMutations
	// CounterEventsPublished counts events delivered to subscribers.
	CounterEventsPublished
	// CounterEventsDropped counts events dropped because a subscriber's
	// buffer was full.
	CounterEventsDropped
	counterIDCount
)

var counterNames = [counterIDCount]string{
	CounterQueries:             "gopermit_queries_total",
	CounterAllowed:             "gopermit_allowed_total",
	CounterDenied:              "gopermit_denied_total",
	CounterDeniedByRestriction: "gopermit_denied_by_restriction_total",
	CounterMutations:           "gopermit_mutations_total",
	CounterEventsPublished:     "gopermit_events_published_total",
	CounterEventsDropped:       "gopermit_events_dropped_total",
}

var counterHelp = [counterIDCount]string{
	CounterQueries:             "Decision queries evaluated.",
	CounterAllowed:             "Decision queries that returned allow.",
	CounterDenied:              "Decision queries that returned deny.",
	CounterDeniedByRestriction: "Denials caused by a restriction overriding a grant.",
	CounterMutations:           "Mutation batches applied.",
	CounterEventsPublished:     "Change events delivered to subscribers.",
	CounterEventsDropped:       "Change events dropped due to full subscriber buffers.",
}

// String returns the counter's exposition name.
func (id CounterID) String() string {
	if id >= counterIDCount {
		return "unknown"
	}
	return counterNames[id]
}

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

type counters struct {
	enabled bool
	values  [counterIDCount]paddedCounter
}

func newCounters(enabled bool) *counters {
	return &counters{enabled: enabled}
}

func (c *counters) inc(id CounterID) {
	if c == nil || !c.enabled || id >= counterIDCount {
		return
	}
	atomic.AddUint64(&c.values[id].value, 1)
}

func (c *counters) value(id CounterID) uint64 {
	if c == nil || !c.enabled || id >= counterIDCount {
		return 0
	}
	return atomic.LoadUint64(&c.values[id].value)
}

// CountersSnapshot is a point-in-time copy of every counter value.
type CountersSnapshot map[CounterID]uint64

func (c *counters) snapshot() CountersSnapshot {
	s := make(CountersSnapshot, int(counterIDCount))
	if c == nil || !c.enabled {
		return s
	}
	for id := CounterID(0); id < counterIDCount; id++ {
		s[id] = atomic.LoadUint64(&c.values[id].value)
	}
	return s
}

// WriteText renders the snapshot in Prometheus text exposition format.
func (s CountersSnapshot) WriteText(w io.Writer) error {
	var b strings.Builder
	b.Grow(1024)

	for id := CounterID(0); id < counterIDCount; id++ {
		name := counterNames[id]
		b.WriteString("# HELP ")
		b.WriteString(name)
		b.WriteByte(' ')
		b.WriteString(counterHelp[id])
		b.WriteByte('\n')
		b.WriteString("# TYPE ")
		b.WriteString(name)
		b.WriteString(" counter\n")
		b.WriteString(name)
		b.WriteByte(' ')
		b.WriteString(strconv.FormatUint(s[id], 10))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}
