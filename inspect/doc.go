// Package inspect renders debug views of a resolver's state: per-permission
// decision explanations, full state reports, and advisory config linting.
// It reads through the [State] interface, satisfied by both *goPermit.Resolver
// and *bind.Store, and never mutates what it inspects.
//
// Explanations answer the question presentation code keeps asking while
// debugging: is this permission missing, or granted but policy-blocked,
// and by which restriction list?
package inspect
