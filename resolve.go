package goshape

import (
	"sort"
	"strings"
)

// Resolve returns the shape reachable at path, or ErrUnresolvable when the
// grammar has no reading of path under s. Ambiguous readings are decided by a
// fixed precedence order, first match wins:
//
//  1. explicit object key (even when the key text contains a separator)
//  2. dictionary key (bare, non-dotted segment)
//  3. nested dotted path through an explicit key, longest declared key first
//  4. bracket indexing into arrays/tuples, at root or after a declared key
//  5. dictionary key followed by a single dotted level into the value shape
//  6. optional-chain unwrap
//
// Resolve takes no depth budget: the path is finite and drives termination.
// Malformed paths (unbalanced brackets, empty segments) are Unresolvable, not
// a distinct error kind.
func Resolve(s Schema, path string, opt ...TraverseOpt) (Schema, error) {
	o := pickOpt(opt)
	r := &resolver{reg: o.Registry, active: map[refVisit]bool{}}
	out, ok := r.resolve(s, path)
	if !ok {
		return nil, unresolvable(path)
	}
	return out, nil
}

// refVisit keys the cycle guard: a reference revisited with the same
// remaining path (or budget, for enumeration) cannot make progress.
type refVisit struct {
	name string
	rem  int
}

type resolver struct {
	reg    *Registry
	active map[refVisit]bool
}

// resolveRule pairs a rule name with its handler. Rules are evaluated
// top-to-bottom; a handler that reports false passes to the next rule.
type resolveRule struct {
	name  string
	apply func(r *resolver, s Schema, k string) (Schema, bool)
}

// resolveRules is populated in init: several handlers recurse through
// resolve, which ranges over this slice, so a package-level composite
// literal would form an initialization cycle.
var resolveRules []resolveRule

func init() {
	resolveRules = []resolveRule{
		{"explicit-key", (*resolver).explicitKey},
		{"dictionary-key", (*resolver).dictionaryKey},
		{"nested-key", (*resolver).nestedKey},
		{"index-access", (*resolver).indexAccess},
		{"dictionary-dotted", (*resolver).dictionaryDotted},
		{"optional-unwrap", (*resolver).optionalUnwrap},
	}
}

func (r *resolver) resolve(s Schema, k string) (Schema, bool) {
	if s == nil || k == "" {
		return nil, false
	}
	if ref, ok := s.(*Reference); ok {
		key := refVisit{ref.Name, len(k)}
		if r.active[key] {
			return nil, false
		}
		target, found := r.reg.Lookup(ref.Name)
		if !found {
			return nil, false
		}
		r.active[key] = true
		out, ok := r.resolve(target, k)
		delete(r.active, key)
		return out, ok
	}
	if u, ok := s.(*Union); ok {
		return r.distribute(u.Variants, func(v Schema) (Schema, bool) { return r.resolve(v, k) })
	}
	for _, rule := range resolveRules {
		if out, ok := rule.apply(r, s, k); ok {
			return out, true
		}
	}
	return nil, false
}

// distribute maps fn over union variants and joins the per-variant results:
// unresolvable variants drop out, duplicates collapse, plural results come
// back as a Union. All variants unresolvable means unresolvable overall.
func (r *resolver) distribute(variants []Schema, fn func(Schema) (Schema, bool)) (Schema, bool) {
	var results []Schema
	for _, v := range variants {
		out, ok := fn(v)
		if !ok {
			continue
		}
		dup := false
		for _, prev := range results {
			if Equal(prev, out) {
				dup = true
				break
			}
		}
		if !dup {
			results = append(results, out)
		}
	}
	switch len(results) {
	case 0:
		return nil, false
	case 1:
		return results[0], true
	default:
		return &Union{Variants: results}, true
	}
}

// normalize strips Optional wrappers and dereferences Reference chains so a
// resolved result is always a concrete shape. Dangling or cyclic reference
// chains report false.
func (r *resolver) normalize(s Schema) (Schema, bool) {
	seen := map[string]bool{}
	for {
		switch v := s.(type) {
		case nil:
			return nil, false
		case *Optional:
			s = v.Inner
		case *Reference:
			if seen[v.Name] {
				return nil, false
			}
			seen[v.Name] = true
			t, ok := r.reg.Lookup(v.Name)
			if !ok {
				return nil, false
			}
			s = t
		default:
			return s, true
		}
	}
}

// Rule 1: k names a declared field outright. Wins over every dotted reading,
// so a field literally named "a.b" shadows a nested a -> b chain.
func (r *resolver) explicitKey(s Schema, k string) (Schema, bool) {
	o, ok := s.(*Object)
	if !ok {
		return nil, false
	}
	f, ok := o.FieldNamed(k)
	if !ok {
		return nil, false
	}
	return r.normalize(f.Schema)
}

// Rule 2: any bare, non-dotted segment is a valid key of a dictionary. Note
// this runs before index access, so under a dictionary "k[0]" is the literal
// key "k[0]", not an index into the value.
func (r *resolver) dictionaryKey(s Schema, k string) (Schema, bool) {
	d, ok := s.(*Dictionary)
	if !ok || strings.Contains(k, ".") {
		return nil, false
	}
	return r.normalize(d.Value)
}

// Rule 3: k reads as declaredField.rest. Declared keys are tried longest
// first so explicit dotted names win over shorter nested chains.
func (r *resolver) nestedKey(s Schema, k string) (Schema, bool) {
	o, ok := s.(*Object)
	if !ok {
		return nil, false
	}
	for _, f := range fieldsByPrefix(o, k, ".") {
		if f.Schema == nil || f.Schema.Kind() == KindTerminal {
			continue
		}
		if out, ok := r.resolve(f.Schema, k[len(f.Name)+1:]); ok {
			return out, true
		}
	}
	return nil, false
}

// Rule 4: bracket indexing, either at the root or after a declared field
// name, chaining through consecutive groups and a dotted continuation.
func (r *resolver) indexAccess(s Schema, k string) (Schema, bool) {
	if strings.HasPrefix(k, "[") {
		return r.resolveIndex(s, k)
	}
	o, ok := s.(*Object)
	if !ok {
		return nil, false
	}
	for _, f := range fieldsByPrefix(o, k, "[") {
		if out, ok := r.resolveIndex(f.Schema, k[len(f.Name):]); ok {
			return out, true
		}
	}
	return nil, false
}

// Rule 5: dictionary key with exactly one dotted level into the value shape.
// Deeper dotted continuations are out of grammar.
func (r *resolver) dictionaryDotted(s Schema, k string) (Schema, bool) {
	d, ok := s.(*Dictionary)
	if !ok {
		return nil, false
	}
	i := strings.IndexByte(k, '.')
	if i <= 0 || i == len(k)-1 {
		return nil, false
	}
	rest := k[i+1:]
	if strings.Contains(rest, ".") {
		return nil, false
	}
	return r.resolve(d.Value, rest)
}

// Rule 6: unwrap one level of absence and keep going.
func (r *resolver) optionalUnwrap(s Schema, k string) (Schema, bool) {
	o, ok := s.(*Optional)
	if !ok {
		return nil, false
	}
	return r.resolve(o.Inner, k)
}

// resolveIndex walks a bracket chain against an indexable shape, unwrapping
// optionals, dereferencing references, and distributing over unions on the
// way down.
func (r *resolver) resolveIndex(t Schema, k string) (Schema, bool) {
	switch v := t.(type) {
	case nil:
		return nil, false
	case *Optional:
		return r.resolveIndex(v.Inner, k)
	case *Reference:
		key := refVisit{v.Name, len(k)}
		if r.active[key] {
			return nil, false
		}
		target, found := r.reg.Lookup(v.Name)
		if !found {
			return nil, false
		}
		r.active[key] = true
		out, ok := r.resolveIndex(target, k)
		delete(r.active, key)
		return out, ok
	case *Union:
		return r.distribute(v.Variants, func(w Schema) (Schema, bool) { return r.resolveIndex(w, k) })
	}
	n, rest, ok := cutIndex(k)
	if !ok {
		return nil, false
	}
	var elem Schema
	switch v := t.(type) {
	case *Array:
		elem = v.Elem // any non-negative index is in shape
	case *Tuple:
		if n >= len(v.Elems) {
			return nil, false
		}
		elem = v.Elems[n]
	default:
		return nil, false
	}
	switch {
	case rest == "":
		return r.normalize(elem)
	case strings.HasPrefix(rest, "["):
		return r.resolveIndex(elem, rest)
	case strings.HasPrefix(rest, "."):
		return r.resolve(elem, rest[1:])
	default:
		return nil, false
	}
}

// fieldsByPrefix returns the declared fields whose name, followed by sep, is
// a prefix of k, longest name first.
func fieldsByPrefix(o *Object, k, sep string) []Field {
	var out []Field
	for _, f := range o.Fields {
		if f.Name != "" && strings.HasPrefix(k, f.Name+sep) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].Name) > len(out[j].Name) })
	return out
}
