package goshape

import (
	"iter"
	"strconv"
	"strings"
)

// Paths returns the lazy, deduplicated sequence of valid path patterns into
// s. Bracket segments use the wildcard-index marker ("[*]"); dictionary keys
// use the wildcard-key marker ("*"). The sequence is finite: every
// object-field or dictionary-value descent consumes one unit of the depth
// budget and a branch stops silently when the budget runs out. Index descent
// is free; cyclic reference chains that never consume budget are cut after
// their first visit.
//
// Any path obtained by substituting in-shape literal integers for the
// wildcard-index markers of a produced pattern resolves successfully via
// Resolve with the same registry.
func Paths(s Schema, opt ...TraverseOpt) iter.Seq[string] {
	o := pickOpt(opt)
	return func(yield func(string) bool) {
		e := &enumerator{
			reg:     o.Registry,
			emitted: map[string]bool{},
			active:  map[refVisit]bool{},
			yield:   yield,
		}
		e.walk(s, "", o.MaxDepth)
	}
}

// EnumeratePaths collects Paths into a slice, in traversal order.
func EnumeratePaths(s Schema, opt ...TraverseOpt) []string {
	var out []string
	for p := range Paths(s, opt...) {
		out = append(out, p)
	}
	return out
}

type enumerator struct {
	reg     *Registry
	emitted map[string]bool
	active  map[refVisit]bool
	yield   func(string) bool
	stopped bool
}

// emit yields a pattern once; duplicates (reachable via several union
// variants or tuple slots) are skipped, not re-yielded.
func (e *enumerator) emit(p string) bool {
	if e.stopped || e.emitted[p] {
		return !e.stopped
	}
	e.emitted[p] = true
	if !e.yield(p) {
		e.stopped = true
	}
	return !e.stopped
}

// walk extends prefix with every pattern s contributes within budget. The
// return value is false once the consumer stopped the sequence.
func (e *enumerator) walk(s Schema, prefix string, budget int) bool {
	if e.stopped {
		return false
	}
	if s == nil || budget <= 0 {
		return true
	}
	switch v := s.(type) {
	case *Terminal:
		// leaves contribute nothing; the parent key reaching here is
		// already out
	case *Optional:
		return e.walk(v.Inner, prefix, budget)
	case *Reference:
		key := refVisit{v.Name, budget}
		if e.active[key] {
			return true
		}
		target, ok := e.reg.Lookup(v.Name)
		if !ok {
			return true
		}
		e.active[key] = true
		cont := e.walk(target, prefix, budget)
		delete(e.active, key)
		return cont
	case *Object:
		for _, f := range v.Fields {
			p := joinPath(prefix, f.Name)
			if !e.emit(p) {
				return false
			}
			if !e.walk(f.Schema, p, budget-1) {
				return false
			}
		}
	case *Array:
		p := prefix + WildcardIndex
		if !e.emit(p) {
			return false
		}
		return e.walk(v.Elem, p, budget)
	case *Tuple:
		if !e.emit(prefix + WildcardIndex) {
			return false
		}
		// slots are heterogeneous, so continuations carry the literal slot
		// index; only the bare pattern uses the wildcard marker
		for i, el := range v.Elems {
			if !e.walk(el, prefix+"["+strconv.Itoa(i)+"]", budget) {
				return false
			}
		}
	case *Union:
		for _, w := range v.Variants {
			if !e.walk(w, prefix, budget) {
				return false
			}
		}
	case *Dictionary:
		p := joinPath(prefix, WildcardKey)
		if !e.emit(p) {
			return false
		}
		// one dotted level under the wildcard key, mirroring the resolver's
		// dictionary-dotted rule so patterns stay resolvable
		for _, seg := range e.valueSegments(v.Value, budget-1, map[string]bool{}) {
			if !e.emit(joinPath(p, seg)) {
				return false
			}
		}
	}
	return true
}

// valueSegments lists the single-segment continuations of a dictionary value
// shape: plain field names and a nested wildcard key. No bracket
// continuations: under a dictionary the whole bracketed text re-reads as a
// literal key and changes the shape.
func (e *enumerator) valueSegments(s Schema, budget int, seen map[string]bool) []string {
	if s == nil || budget <= 0 {
		return nil
	}
	switch v := s.(type) {
	case *Optional:
		return e.valueSegments(v.Inner, budget, seen)
	case *Reference:
		if seen[v.Name] {
			return nil
		}
		target, ok := e.reg.Lookup(v.Name)
		if !ok {
			return nil
		}
		seen[v.Name] = true
		segs := e.valueSegments(target, budget, seen)
		delete(seen, v.Name)
		return segs
	case *Object:
		out := make([]string, 0, len(v.Fields))
		for _, f := range v.Fields {
			// a dotted field name would re-split at the first separator
			// under the wildcard key and fall out of grammar
			if f.Name != "" && !strings.Contains(f.Name, ".") {
				out = append(out, f.Name)
			}
		}
		return out
	case *Dictionary:
		return []string{WildcardKey}
	case *Union:
		var out []string
		for _, w := range v.Variants {
			out = append(out, e.valueSegments(w, budget, seen)...)
		}
		return out
	default:
		return nil
	}
}
