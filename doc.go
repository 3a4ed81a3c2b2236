// Package goPermit provides client-side permission resolution: direct grants,
// role-derived grants, a global deny-list, and sector-scoped deny-lists
// combined into a single allow/deny decision with absolute restriction
// precedence.
//
// The package is a library, not an authorization system of record. It
// performs no network calls, persists nothing, and verifies nothing
// cryptographically. Decisions are advisory (hide a button, skip a menu
// entry); enforcement belongs to the server.
//
// # Architecture boundaries
//
// goPermit is the core surface. It exposes [Resolver], [Config], and the
// identifier and enum types ([Permission], [Role], [Sector], [Mode],
// [Reason]). The core is a plain synchronous data structure with no locking
// and no I/O. Surrounding concerns live in sub-packages: bind (concurrency-
// safe store with change events and counters), source (file and token
// configuration loading), inspect (decision explain and state reports).
//
// # What this package must NOT do
//
//   - Perform I/O of any kind; configuration loading lives in source.
//   - Lock or synchronize; concurrent callers go through bind.Store.
//   - Validate identifiers. Any string is a valid permission, role, or
//     sector name, and every operation is total over its input domain.
//   - Import any sub-package (no import cycles).
package goPermit
