// Package primitives provides the foundational data structures for micromodel.
//
// This package uses only the Go standard library. It holds the pieces every
// other tier builds on:
//   - Store: the attribute bag behind every Model
//   - Equal: the default change-detection equality
//   - Event: an emitted event name with its arguments
//   - ClassConfig: the declarative form of a composed class
//
// Core invariants:
//   - Store.Apply commits a whole patch before reporting what changed
//   - Snapshot returns a copy; callers never alias the live map
//   - Equal never panics, whatever the dynamic types
package primitives
