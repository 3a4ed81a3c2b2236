// Package bind is the reactive-binding layer over a goPermit resolver: one
// concurrency-safe [Store] per principal or session, with change events,
// batched updates, and query counters.
//
// The core resolver is deliberately unsynchronized; Store serializes all
// access through one RWMutex so concurrent readers always observe a
// consistent snapshot. [Store.Update] applies a whole batch of mutations
// under a single lock hold and publishes exactly one change event for it, so
// subscribers never observe a partially applied configuration.
//
// Events invalidate, they do not carry state: a subscriber reacts to an
// [Event] by re-querying the Store. Event fan-out never blocks a mutator;
// when a subscriber's buffer is full the event is dropped and counted.
//
// # Architecture boundaries
//
// bind owns concurrency, observation, and counting. Permission semantics
// stay in goPermit; bind adds no decision logic of its own.
//
// # What this package must NOT do
//
//   - Reorder or coalesce a caller's mutations (a batch is applied exactly
//     as written, in order).
//   - Deliver state through events (subscribers re-query).
//   - Block any mutation on a slow subscriber.
package bind
