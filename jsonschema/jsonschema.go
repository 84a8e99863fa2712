package jsonschema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	goshape "github.com/reoring/goshape"
)

// Import compiles a pragmatic subset of JSON Schema (type/properties/
// required/additionalProperties/items/prefixItems/oneOf/anyOf/$defs/$ref/
// nullable/format) into a shape graph. The input can be raw JSON bytes, a
// decoded map[string]any, or anything marshalable to one. Local $defs become
// Registry definitions and $ref becomes a Reference, so cycles are never
// expanded eagerly.
func Import(schema any, opts Options) (goshape.Schema, *goshape.Registry, Diag, error) {
	d := &simpleDiag{}
	if schema == nil {
		return nil, nil, d, errors.New("jsonschema: nil schema")
	}
	var root map[string]any
	switch t := schema.(type) {
	case []byte:
		if err := json.Unmarshal(t, &root); err != nil {
			return nil, nil, d, fmt.Errorf("jsonschema: invalid JSON: %w", err)
		}
	case map[string]any:
		root = t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, nil, d, fmt.Errorf("jsonschema: cannot marshal input: %w", err)
		}
		if err := json.Unmarshal(b, &root); err != nil {
			return nil, nil, d, fmt.Errorf("jsonschema: invalid marshaled JSON: %w", err)
		}
	}

	reg := goshape.NewRegistry()
	if defs, ok := root["$defs"].(map[string]any); ok {
		for name, raw := range defs {
			dm, ok := raw.(map[string]any)
			if !ok {
				d.warnf("$defs/%s is not a schema object", name)
				continue
			}
			reg.Define(name, importNode(dm, d))
		}
	}

	s := importNode(root, d)
	if !opts.AllowDanglingRefs {
		if err := reg.Validate(); err != nil {
			return nil, nil, d, err
		}
		if err := reg.Check(s); err != nil {
			return nil, nil, d, err
		}
	}
	return s, reg, d, nil
}

func importNode(doc map[string]any, d *simpleDiag) goshape.Schema {
	s := importCore(doc, d)
	if nullable, _ := doc["nullable"].(bool); nullable {
		s = &goshape.Optional{Inner: s}
	}
	return s
}

func importCore(doc map[string]any, d *simpleDiag) goshape.Schema {
	if ref, ok := doc["$ref"].(string); ok {
		if name, ok := strings.CutPrefix(ref, "#/$defs/"); ok {
			return &goshape.Reference{Name: name}
		}
		d.warnf("$ref %q not supported (local $defs only); treated as opaque", ref)
		return &goshape.Terminal{Prim: goshape.PrimOpaque}
	}
	if alts := altSchemas(doc); alts != nil {
		variants := make([]goshape.Schema, 0, len(alts))
		for _, a := range alts {
			variants = append(variants, importNode(a, d))
		}
		return &goshape.Union{Variants: variants}
	}

	typ, _ := doc["type"].(string)
	switch typ {
	case "object":
		return importObject(doc, d)
	case "array":
		return importArray(doc, d)
	case "string":
		switch f, _ := doc["format"].(string); f {
		case "date-time", "date", "time":
			return &goshape.Terminal{Prim: goshape.PrimTime}
		case "regex":
			return &goshape.Terminal{Prim: goshape.PrimPattern}
		default:
			return &goshape.Terminal{Prim: goshape.PrimString}
		}
	case "number", "integer":
		return &goshape.Terminal{Prim: goshape.PrimNumber}
	case "boolean":
		return &goshape.Terminal{Prim: goshape.PrimBool}
	case "":
		// untyped: infer from structure keywords
		if _, ok := doc["properties"]; ok {
			return importObject(doc, d)
		}
		if _, ok := doc["additionalProperties"].(map[string]any); ok {
			return importObject(doc, d)
		}
		if _, ok := doc["items"]; ok {
			return importArray(doc, d)
		}
		if _, ok := doc["prefixItems"]; ok {
			return importArray(doc, d)
		}
		d.warnf("schema without type or structure keywords treated as opaque")
		return &goshape.Terminal{Prim: goshape.PrimOpaque}
	default:
		d.warnf("unsupported type %q treated as opaque", typ)
		return &goshape.Terminal{Prim: goshape.PrimOpaque}
	}
}

// altSchemas returns the oneOf/anyOf alternatives when present.
func altSchemas(doc map[string]any) []map[string]any {
	raw, ok := doc["oneOf"].([]any)
	if !ok {
		raw, ok = doc["anyOf"].([]any)
	}
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		if m, ok := r.(map[string]any); ok {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func importObject(doc map[string]any, d *simpleDiag) goshape.Schema {
	props, hasProps := doc["properties"].(map[string]any)
	addl, hasAddl := doc["additionalProperties"].(map[string]any)

	if !hasProps || len(props) == 0 {
		if hasAddl {
			return &goshape.Dictionary{Value: importNode(addl, d)}
		}
		return &goshape.Object{}
	}
	if hasAddl {
		d.warnf("object mixes properties and an additionalProperties schema; properties win")
	}

	required := map[string]bool{}
	for _, r := range extractRequiredNames(doc) {
		required[r] = true
	}
	fields := make([]goshape.Field, 0, len(props))
	for _, name := range sortedKeys(props) {
		ps, ok := props[name].(map[string]any)
		if !ok {
			d.warnf("property %q is not a schema object; treated as opaque", name)
			fields = append(fields, goshape.Field{
				Name: name, Schema: &goshape.Terminal{Prim: goshape.PrimOpaque}, Optional: !required[name],
			})
			continue
		}
		fields = append(fields, goshape.Field{
			Name: name, Schema: importNode(ps, d), Optional: !required[name],
		})
	}
	return &goshape.Object{Fields: fields}
}

func importArray(doc map[string]any, d *simpleDiag) goshape.Schema {
	if raw, ok := doc["prefixItems"].([]any); ok && len(raw) > 0 {
		elems := make([]goshape.Schema, 0, len(raw))
		for i, r := range raw {
			m, ok := r.(map[string]any)
			if !ok {
				d.warnf("prefixItems[%d] is not a schema object; treated as opaque", i)
				elems = append(elems, &goshape.Terminal{Prim: goshape.PrimOpaque})
				continue
			}
			elems = append(elems, importNode(m, d))
		}
		return &goshape.Tuple{Elems: elems}
	}
	if it, ok := doc["items"].(map[string]any); ok {
		return &goshape.Array{Elem: importNode(it, d)}
	}
	d.warnf("array without items treated as array of opaque")
	return &goshape.Array{Elem: &goshape.Terminal{Prim: goshape.PrimOpaque}}
}

// extractRequiredNames retrieves property names listed under required.
func extractRequiredNames(doc map[string]any) []string {
	if req, ok := doc["required"].([]any); ok {
		var names []string
		for _, r := range req {
			if s, ok := r.(string); ok {
				names = append(names, s)
			}
		}
		return names
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// deterministic field order for imported objects
	sort.Strings(out)
	return out
}
