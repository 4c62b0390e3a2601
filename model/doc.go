// Package model defines the format-agnostic representation of a documented
// function: its category, argument schema, return contract, failure reasons,
// and worked examples.
//
// Values of these types are built once by a loader (or by the New
// constructor directly) and are treated as immutable afterwards. Consumers
// receive them through a registry snapshot and must not mutate them; a new
// snapshot is produced by re-running the load, never by editing in place.
package model
