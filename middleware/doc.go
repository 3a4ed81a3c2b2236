// Package middleware exposes HTTP guards that gate handlers on goPermit
// decisions from a per-request bind store.
//
// # Guards
//
//   - [Require] — all listed permissions must be allowed.
//   - [RequireAny] — at least one listed permission must be allowed.
//   - [RequireRole] — raw role membership, restrictions not consulted.
//
// Guards resolve the principal's store from the request context (see
// bind.WithStore); a missing store rejects with 401. Denials respond 403,
// with an X-Permission-Restricted header when a granted permission was
// blocked by a restriction, so clients can tell "not yours" from "blocked by
// policy".
//
// These guards gate presentation, not security: the decisions come from
// client-side state and the server must enforce independently.
//
// # What this package must NOT do
//
//   - Make decisions itself (everything is delegated to the store).
//   - Mutate the store.
//   - Treat a 403 here as server-side enforcement.
package middleware
