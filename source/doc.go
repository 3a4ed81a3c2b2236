// Package source loads initial goPermit configurations from outside the
// process: static values, JSON/JSONC/YAML files, and the claims of an access
// token. A file [Watcher] pushes reloaded configurations into a bind store.
//
// # Token claims are NOT verified
//
// [TokenSource] decodes claims with jwt's ParseUnverified and checks no
// signature. That is deliberate: goPermit is a client-side convenience layer,
// never a security boundary, and the permissions a client renders from are
// enforced again server-side. Do not reuse TokenSource anywhere a forged
// token would matter.
//
// # Architecture boundaries
//
// source owns all configuration I/O so the core can stay I/O-free. It
// produces plain [goPermit.Config] values and knows nothing about resolver
// internals.
//
// # What this package must NOT do
//
//   - Validate identifiers (the core accepts free-form strings; so do we).
//   - Verify token signatures or expiry.
//   - Mutate a store beyond Applier.Apply.
package source
