package jsonschema

import (
	"errors"
	"fmt"

	goshape "github.com/reoring/goshape"
)

// Doc is a minimal JSON Schema document used for export. Keep this struct
// small and extend incrementally.
type Doc struct {
	// Core
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`

	// Object
	Properties           map[string]*Doc `json:"properties,omitempty"`
	Required             []string        `json:"required,omitempty"`
	AdditionalProperties *Doc            `json:"additionalProperties,omitempty"`

	// Array / tuple
	Items       *Doc   `json:"items,omitempty"`
	PrefixItems []*Doc `json:"prefixItems,omitempty"`

	// Union / absence
	OneOf    []*Doc `json:"oneOf,omitempty"`
	Nullable bool   `json:"nullable,omitempty"`

	// References
	Ref  string          `json:"$ref,omitempty"`
	Defs map[string]*Doc `json:"$defs,omitempty"`
}

// Export renders a shape graph as a JSON Schema document. References are
// emitted as "#/$defs/<name>" and their definitions collected at the root, so
// self-referential graphs export without expansion.
func Export(s goshape.Schema, reg *goshape.Registry) (*Doc, error) {
	if s == nil {
		return nil, errors.New("jsonschema: nil schema")
	}
	ex := &exporter{reg: reg, defs: map[string]*Doc{}, started: map[string]bool{}}
	root, err := ex.doc(s)
	if err != nil {
		return nil, err
	}
	if len(ex.defs) > 0 {
		root.Defs = ex.defs
	}
	return root, nil
}

type exporter struct {
	reg     *goshape.Registry
	defs    map[string]*Doc
	started map[string]bool
}

func (ex *exporter) doc(s goshape.Schema) (*Doc, error) {
	switch v := s.(type) {
	case *goshape.Terminal:
		switch v.Prim {
		case goshape.PrimString:
			return &Doc{Type: "string"}, nil
		case goshape.PrimNumber:
			return &Doc{Type: "number"}, nil
		case goshape.PrimBool:
			return &Doc{Type: "boolean"}, nil
		case goshape.PrimTime:
			return &Doc{Type: "string", Format: "date-time"}, nil
		case goshape.PrimPattern:
			return &Doc{Type: "string", Format: "regex"}, nil
		default:
			// opaque/callable/deferred leaves have no JSON Schema shape
			return &Doc{}, nil
		}
	case *goshape.Object:
		out := &Doc{Type: "object"}
		if len(v.Fields) > 0 {
			out.Properties = make(map[string]*Doc, len(v.Fields))
		}
		for _, f := range v.Fields {
			fs := f.Schema
			optional := f.Optional
			if o, ok := fs.(*goshape.Optional); ok {
				fs = o.Inner
				optional = true
			}
			fd, err := ex.doc(fs)
			if err != nil {
				return nil, err
			}
			out.Properties[f.Name] = fd
			if !optional {
				out.Required = append(out.Required, f.Name)
			}
		}
		return out, nil
	case *goshape.Dictionary:
		vd, err := ex.doc(v.Value)
		if err != nil {
			return nil, err
		}
		return &Doc{Type: "object", AdditionalProperties: vd}, nil
	case *goshape.Array:
		ed, err := ex.doc(v.Elem)
		if err != nil {
			return nil, err
		}
		return &Doc{Type: "array", Items: ed}, nil
	case *goshape.Tuple:
		out := &Doc{Type: "array"}
		for _, e := range v.Elems {
			ed, err := ex.doc(e)
			if err != nil {
				return nil, err
			}
			out.PrefixItems = append(out.PrefixItems, ed)
		}
		return out, nil
	case *goshape.Union:
		out := &Doc{}
		for _, w := range v.Variants {
			wd, err := ex.doc(w)
			if err != nil {
				return nil, err
			}
			out.OneOf = append(out.OneOf, wd)
		}
		return out, nil
	case *goshape.Optional:
		inner, err := ex.doc(v.Inner)
		if err != nil {
			return nil, err
		}
		inner.Nullable = true
		return inner, nil
	case *goshape.Reference:
		if !ex.started[v.Name] {
			target, ok := ex.reg.Lookup(v.Name)
			if !ok {
				return nil, fmt.Errorf("jsonschema: dangling reference %q", v.Name)
			}
			ex.started[v.Name] = true
			td, err := ex.doc(target)
			if err != nil {
				return nil, err
			}
			ex.defs[v.Name] = td
		}
		return &Doc{Ref: "#/$defs/" + v.Name}, nil
	default:
		return nil, fmt.Errorf("jsonschema: unsupported schema kind %v", s.Kind())
	}
}
