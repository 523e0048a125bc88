// Package op implements the domain layer for canonical operation values.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Contains only pure Go code with minimal imports (no infrastructure concerns)
//   - Defines the Op value object, Kind descriptors, and Signal/Condition value types
//   - Implements the interning rules (canonical vs standalone instances)
//   - Has no knowledge of persistence, catalogs, or presentation
//
// # Canonical and standalone instances
//
// Every Op is in exactly one of two modes for its whole lifetime. A canonical
// instance is the single shared, immutable, registry-owned value for a
// (kind, lookup key) pair: constructing a kind with default arguments returns
// the same pointer every time. A standalone instance is an ordinary mutable
// value owned exclusively by whoever holds the reference; any argument that
// deviates from the kind's declared defaults produces one.
//
// # Kinds
//
// Kind describes a concrete operation type: its name, default parameters,
// optional custom lookup-key resolver, and any additional canonical entries.
// Kinds are defined once with DefineKind (or MustDefineKind for static
// definitions) and live in a process-wide catalog so encoded operations can
// be resolved back to their kind. Derive creates a child kind with its own
// independent registry namespace.
//
// # Copying and encoding
//
// Copy, DeepCopy, and Encode/Decode all follow one rule: canonical instances
// are never duplicated (the same pointer comes back), standalone instances
// always are. Encoded canonical operations store how to reconstruct
// (kind name plus construction arguments) and decoding routes through the
// normal constructor, which re-interns and returns the original pointer.
//
// # Derived construction
//
// When attaches a runtime condition and Wrap embeds an operation inside a
// composite. Both always produce standalone results and never leak a live
// canonical reference into a mutable position.
package op
