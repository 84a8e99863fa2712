package goshape

// Package goshape provides:
//
// - A structural shape model (objects, arrays, tuples, dictionaries, unions,
//   optionals, named references) describing nested data layouts
// - Enumeration of every valid string access path into a shape, bounded by a
//   depth budget so self-referential shapes stay tractable (Paths/EnumeratePaths)
// - Resolution of an arbitrary path string to the shape reachable at it, with
//   a fixed precedence order over ambiguous readings (Resolve)
// - Eager validation of reference graphs via Registry (dangling names are
//   construction-time Issues, never deferred to path operations)
//
// Design policy:
// - Keep the public model and operations in the root package; construction
//   sugar lives under dsl/, interchange under jsonschema/, the CLI under
//   cmd/goshape.
// - Both operations are pure functions over immutable schema graphs: no I/O,
//   no shared state, safe for concurrent use without coordination.
// - Negative outcomes are values. Resolve reports ErrUnresolvable; it never
//   panics for a well-formed schema, and enumeration truncates silently at
//   the depth budget.
//
// Typical usage:
//
//	s := dsl.Object().
//		Field("items", dsl.Array(dsl.Object().Field("id", dsl.Number()).Build())).
//		Build()
//	paths := goshape.EnumeratePaths(s)            // items, items[*], items[*].id
//	shape, err := goshape.Resolve(s, "items[0].id") // Terminal number
