package dsl

import (
	goshape "github.com/reoring/goshape"
)

// ---- terminals ----

// String returns a textual terminal.
func String() goshape.Schema { return &goshape.Terminal{Prim: goshape.PrimString} }

// Number returns a numeric terminal.
func Number() goshape.Schema { return &goshape.Terminal{Prim: goshape.PrimNumber} }

// Bool returns a boolean terminal.
func Bool() goshape.Schema { return &goshape.Terminal{Prim: goshape.PrimBool} }

// Time returns a timestamp terminal.
func Time() goshape.Schema { return &goshape.Terminal{Prim: goshape.PrimTime} }

// Pattern returns a regular-expression terminal.
func Pattern() goshape.Schema { return &goshape.Terminal{Prim: goshape.PrimPattern} }

// Func returns a callable terminal.
func Func() goshape.Schema { return &goshape.Terminal{Prim: goshape.PrimFunc} }

// Promise returns a deferred-value terminal.
func Promise() goshape.Schema { return &goshape.Terminal{Prim: goshape.PrimPromise} }

// Opaque returns an atomic leaf the traversal never enters, even when the
// underlying value is composite.
func Opaque() goshape.Schema { return &goshape.Terminal{Prim: goshape.PrimOpaque} }

// ---- containers ----

// Array returns a homogeneous index-addressed sequence of elem.
func Array(elem goshape.Schema) goshape.Schema { return &goshape.Array{Elem: elem} }

// Tuple returns a fixed-length heterogeneous sequence.
func Tuple(elems ...goshape.Schema) goshape.Schema {
	return &goshape.Tuple{Elems: append([]goshape.Schema(nil), elems...)}
}

// Map returns an open string-keyed dictionary with the given value shape.
func Map(value goshape.Schema) goshape.Schema { return &goshape.Dictionary{Value: value} }

// Union returns a structural union over the given variants.
func Union(variants ...goshape.Schema) goshape.Schema {
	return &goshape.Union{Variants: append([]goshape.Schema(nil), variants...)}
}

// Optional wraps a shape that may be absent.
func Optional(inner goshape.Schema) goshape.Schema { return &goshape.Optional{Inner: inner} }

// Ref returns a named reference resolved lazily through a Registry.
func Ref(name string) goshape.Schema { return &goshape.Reference{Name: name} }

// ---- object builder ----

// ObjectBuilder accumulates declared fields. Fields are required unless
// marked via Optional.
type ObjectBuilder struct {
	fields   []goshape.Field
	optional map[string]bool
}

// Object starts an object builder.
func Object() *ObjectBuilder {
	return &ObjectBuilder{optional: map[string]bool{}}
}

// Field declares a property. Declaration order is preserved.
func (b *ObjectBuilder) Field(name string, s goshape.Schema) *ObjectBuilder {
	b.fields = append(b.fields, goshape.Field{Name: name, Schema: s})
	return b
}

// Optional marks previously declared fields as possibly absent.
func (b *ObjectBuilder) Optional(names ...string) *ObjectBuilder {
	for _, n := range names {
		b.optional[n] = true
	}
	return b
}

// Build materializes the object shape.
func (b *ObjectBuilder) Build() goshape.Schema {
	out := make([]goshape.Field, len(b.fields))
	copy(out, b.fields)
	for i := range out {
		if b.optional[out[i].Name] {
			out[i].Optional = true
		}
	}
	return &goshape.Object{Fields: out}
}
