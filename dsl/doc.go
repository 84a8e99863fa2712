// Package dsl provides construction sugar for goshape schema graphs.
//
// Builders only assemble the model; they add no semantics of their own.
// Structural defects (dangling references, empty unions) are reported by
// goshape.Registry at validation time, not here.
//
//	s := dsl.Object().
//		Field("name", dsl.String()).
//		Field("child", dsl.Ref("T")).
//		Optional("child").
//		Build()
package dsl
