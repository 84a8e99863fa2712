package goshape

import (
	"sort"
	"strings"
)

// Kind identifies a schema variant.
type Kind int

const (
	KindTerminal Kind = iota
	KindObject
	KindDictionary
	KindArray
	KindTuple
	KindUnion
	KindOptional
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindTerminal:
		return "terminal"
	case KindObject:
		return "object"
	case KindDictionary:
		return "dictionary"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindUnion:
		return "union"
	case KindOptional:
		return "optional"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Primitive names the leaf family carried by a Terminal.
type Primitive int

const (
	PrimOpaque Primitive = iota // Composite-but-atomic values the traversal never enters.
	PrimNumber
	PrimString
	PrimBool
	PrimTime
	PrimPattern // Regular-expression values.
	PrimFunc
	PrimPromise // Deferred/future values.
)

func (p Primitive) String() string {
	switch p {
	case PrimNumber:
		return "number"
	case PrimString:
		return "string"
	case PrimBool:
		return "bool"
	case PrimTime:
		return "time"
	case PrimPattern:
		return "pattern"
	case PrimFunc:
		return "func"
	case PrimPromise:
		return "promise"
	default:
		return "opaque"
	}
}

// Schema is the closed set of structural shape variants. Graphs are built
// once, immutable afterwards, and may be shared by any number of concurrent
// Paths/Resolve calls.
type Schema interface {
	Kind() Kind
}

// Terminal is a primitive or opaque leaf. Path traversal never descends into
// a Terminal even when the underlying value is internally composite.
type Terminal struct {
	Prim Primitive
}

func (*Terminal) Kind() Kind { return KindTerminal }

// Field is one declared property of an Object. Optional affects the shape a
// resolver reports, not which paths exist.
type Field struct {
	Name     string
	Schema   Schema
	Optional bool
}

// Object holds explicitly declared, named properties. Declaration order is
// kept only for deterministic enumeration; lookup is by name.
type Object struct {
	Fields []Field
}

func (*Object) Kind() Kind { return KindObject }

// FieldNamed returns the declared field with the given name.
func (o *Object) FieldNamed(name string) (Field, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Dictionary is an open string-keyed map: every key is valid and yields Value.
type Dictionary struct {
	Value Schema
}

func (*Dictionary) Kind() Kind { return KindDictionary }

// Array is a homogeneous, index-addressed sequence.
type Array struct {
	Elem Schema
}

func (*Array) Kind() Kind { return KindArray }

// Tuple is a fixed-length, heterogeneous, index-addressed sequence.
type Tuple struct {
	Elems []Schema
}

func (*Tuple) Kind() Kind { return KindTuple }

// Union means the value is structurally one of Variants. Path operations
// distribute over every variant.
type Union struct {
	Variants []Schema
}

func (*Union) Kind() Kind { return KindUnion }

// Optional wraps a shape that may be absent. Navigating through it unwraps
// one level of absence.
type Optional struct {
	Inner Schema
}

func (*Optional) Kind() Kind { return KindOptional }

// Reference is a named, lazily resolved handle into a Registry. It is the
// only way to express self-referential shapes; graphs stay finite because a
// Reference is never expanded eagerly.
type Reference struct {
	Name string
}

func (*Reference) Kind() Kind { return KindReference }

// Equal reports structural equality of two shapes. References compare by
// name, objects by name/optionality/field shape regardless of declaration
// order, unions by set equality of variants.
func Equal(a, b Schema) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *Terminal:
		return av.Prim == b.(*Terminal).Prim
	case *Object:
		bv := b.(*Object)
		if len(av.Fields) != len(bv.Fields) {
			return false
		}
		for _, f := range av.Fields {
			g, ok := bv.FieldNamed(f.Name)
			if !ok || g.Optional != f.Optional || !Equal(f.Schema, g.Schema) {
				return false
			}
		}
		// the forward pass alone would let a shadowed duplicate field on one
		// side stand in for a distinct name on the other
		for _, g := range bv.Fields {
			if _, ok := av.FieldNamed(g.Name); !ok {
				return false
			}
		}
		return true
	case *Dictionary:
		return Equal(av.Value, b.(*Dictionary).Value)
	case *Array:
		return Equal(av.Elem, b.(*Array).Elem)
	case *Tuple:
		bv := b.(*Tuple)
		if len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *Union:
		bv := b.(*Union)
		if len(av.Variants) != len(bv.Variants) {
			return false
		}
		matched := make([]bool, len(bv.Variants))
		for _, v := range av.Variants {
			found := false
			for i, w := range bv.Variants {
				if !matched[i] && Equal(v, w) {
					matched[i] = true
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	case *Optional:
		return Equal(av.Inner, b.(*Optional).Inner)
	case *Reference:
		return av.Name == b.(*Reference).Name
	default:
		return false
	}
}

// Sprint renders a compact single-line description of a shape, e.g.
// object{id:number, child?:ref(T)}. Intended for CLI output and debugging.
func Sprint(s Schema) string {
	var b strings.Builder
	sprintTo(&b, s)
	return b.String()
}

func sprintTo(b *strings.Builder, s Schema) {
	if s == nil {
		b.WriteString("<nil>")
		return
	}
	switch v := s.(type) {
	case *Terminal:
		b.WriteString(v.Prim.String())
	case *Object:
		b.WriteString("object{")
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			if f.Optional {
				b.WriteByte('?')
			}
			b.WriteByte(':')
			sprintTo(b, f.Schema)
		}
		b.WriteByte('}')
	case *Dictionary:
		b.WriteString("dict<")
		sprintTo(b, v.Value)
		b.WriteByte('>')
	case *Array:
		b.WriteString("array<")
		sprintTo(b, v.Elem)
		b.WriteByte('>')
	case *Tuple:
		b.WriteString("tuple[")
		for i, e := range v.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			sprintTo(b, e)
		}
		b.WriteByte(']')
	case *Union:
		b.WriteString("union(")
		// sprint variants in a stable order
		parts := make([]string, 0, len(v.Variants))
		for _, w := range v.Variants {
			parts = append(parts, Sprint(w))
		}
		sort.Strings(parts)
		b.WriteString(strings.Join(parts, " | "))
		b.WriteByte(')')
	case *Optional:
		b.WriteString("optional<")
		sprintTo(b, v.Inner)
		b.WriteByte('>')
	case *Reference:
		b.WriteString("ref(")
		b.WriteString(v.Name)
		b.WriteByte(')')
	}
}
