package goshape

import (
	"sort"
	"strconv"
)

// Registry is the lazy lookup table behind Reference nodes: name -> Schema.
// Define every named shape up front, then call Validate once; after that the
// registry is read-only and safe to share across traversals.
type Registry struct {
	defs map[string]Schema
	dups []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: map[string]Schema{}}
}

// Define registers a named shape. Redefinition is recorded and reported by
// Validate rather than panicking; the last definition wins for lookups.
func (r *Registry) Define(name string, s Schema) {
	if _, exists := r.defs[name]; exists {
		r.dups = append(r.dups, name)
	}
	r.defs[name] = s
}

// Lookup resolves a reference name. A nil registry resolves nothing.
func (r *Registry) Lookup(name string) (Schema, bool) {
	if r == nil {
		return nil, false
	}
	s, ok := r.defs[name]
	return s, ok
}

// Names returns all defined names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.defs))
	for n := range r.defs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Validate checks every definition eagerly: dangling references, duplicate
// definitions, empty unions, blank field names. Defects come back as Issues;
// path operations assume a validated graph and report dangling names as
// Unresolvable instead of failing loudly.
func (r *Registry) Validate() error {
	var iss Issues
	for _, name := range r.dups {
		iss = AppendIssues(iss, Issue{
			Path: "/" + name, Code: CodeDuplicateDefinition,
			Message: "shape defined more than once",
		})
	}
	for _, name := range r.Names() {
		iss = append(iss, r.check(r.defs[name], "/"+name, map[string]bool{})...)
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// Check validates a single schema graph against this registry. It accepts a
// nil receiver for reference-free graphs.
func (r *Registry) Check(s Schema) error {
	if iss := r.check(s, "", map[string]bool{}); len(iss) > 0 {
		return iss
	}
	return nil
}

func (r *Registry) check(s Schema, path string, seen map[string]bool) Issues {
	var iss Issues
	switch v := s.(type) {
	case nil:
		iss = AppendIssues(iss, Issue{Path: path, Code: CodeBlankField, Message: "nil schema"})
	case *Terminal:
	case *Object:
		names := map[string]bool{}
		for _, f := range v.Fields {
			if f.Name == "" {
				iss = AppendIssues(iss, Issue{Path: path, Code: CodeBlankField, Message: "object field with empty name"})
				continue
			}
			if names[f.Name] {
				iss = AppendIssues(iss, Issue{
					Path: path + "/" + f.Name, Code: CodeDuplicateDefinition,
					Message: "object field declared more than once",
				})
				continue
			}
			names[f.Name] = true
			iss = append(iss, r.check(f.Schema, path+"/"+f.Name, seen)...)
		}
	case *Dictionary:
		iss = append(iss, r.check(v.Value, path+"/*", seen)...)
	case *Array:
		iss = append(iss, r.check(v.Elem, path+"/[]", seen)...)
	case *Tuple:
		for i, e := range v.Elems {
			iss = append(iss, r.check(e, path+"/"+strconv.Itoa(i), seen)...)
		}
	case *Union:
		if len(v.Variants) == 0 {
			iss = AppendIssues(iss, Issue{Path: path, Code: CodeEmptyUnion, Message: "union with no variants"})
		}
		for _, w := range v.Variants {
			iss = append(iss, r.check(w, path, seen)...)
		}
	case *Optional:
		iss = append(iss, r.check(v.Inner, path, seen)...)
	case *Reference:
		target, ok := r.Lookup(v.Name)
		if !ok {
			iss = AppendIssues(iss, Issue{
				Path: path, Code: CodeDanglingReference,
				Message: "reference to undefined shape",
				Hint:    "define " + v.Name + " before validating",
			})
			return iss
		}
		if seen[v.Name] {
			return iss // already walked on this chain
		}
		seen[v.Name] = true
		iss = append(iss, r.check(target, path, seen)...)
		delete(seen, v.Name)
	}
	return iss
}
