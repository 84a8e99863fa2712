package goshape_test

import (
	"testing"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
)

func mustResolve(t *testing.T, s goshape.Schema, path string, opt ...goshape.TraverseOpt) goshape.Schema {
	t.Helper()
	out, err := goshape.Resolve(s, path, opt...)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", path, err)
	}
	return out
}

func wantUnresolvable(t *testing.T, s goshape.Schema, path string, opt ...goshape.TraverseOpt) {
	t.Helper()
	out, err := goshape.Resolve(s, path, opt...)
	if err == nil {
		t.Fatalf("Resolve(%q) = %s, want unresolvable", path, goshape.Sprint(out))
	}
	if !goshape.IsUnresolvable(err) {
		t.Fatalf("Resolve(%q) err = %v, want ErrUnresolvable", path, err)
	}
}

func wantShape(t *testing.T, got, want goshape.Schema) {
	t.Helper()
	if !goshape.Equal(got, want) {
		t.Fatalf("shape = %s, want %s", goshape.Sprint(got), goshape.Sprint(want))
	}
}

func TestResolve_ExplicitKeyPrecedence(t *testing.T) {
	// a field literally named "a.b" shadows the nested a -> b chain
	s := dsl.Object().
		Field("a.b", dsl.Object().Field("c", dsl.Number()).Build()).
		Field("a", dsl.Object().
			Field("b", dsl.Object().Field("c", dsl.String()).Build()).
			Build()).
		Build()

	wantShape(t, mustResolve(t, s, "a.b"), dsl.Object().Field("c", dsl.Number()).Build())
	wantShape(t, mustResolve(t, s, "a.b.c"), dsl.Number())

	// the shorter chain stays reachable where it does not collide
	wantShape(t, mustResolve(t, s, "a"), dsl.Object().
		Field("b", dsl.Object().Field("c", dsl.String()).Build()).
		Build())
}

func TestResolve_ArrayChaining(t *testing.T) {
	item := dsl.Object().
		Field("id", dsl.Number()).
		Field("tags", dsl.Array(dsl.String())).
		Build()
	s := dsl.Object().Field("items", dsl.Array(item)).Build()

	wantShape(t, mustResolve(t, s, "items[0].tags[1]"), dsl.String())
	wantShape(t, mustResolve(t, s, "items[0].id"), dsl.Number())
	wantShape(t, mustResolve(t, s, "items[7]"), item)
	wantShape(t, mustResolve(t, s, "items"), dsl.Array(item))
}

func TestResolve_RootIndexing(t *testing.T) {
	s := dsl.Tuple(dsl.String(), dsl.Object().Field("n", dsl.Number()).Build())

	wantShape(t, mustResolve(t, s, "[0]"), dsl.String())
	wantShape(t, mustResolve(t, s, "[1].n"), dsl.Number())
	wantUnresolvable(t, s, "[2]") // out of tuple bounds

	arr := dsl.Array(dsl.Array(dsl.Bool()))
	wantShape(t, mustResolve(t, arr, "[3][9]"), dsl.Bool())
}

func TestResolve_OptionalUnwrap(t *testing.T) {
	s := dsl.Object().
		Field("opt", dsl.Optional(dsl.Object().Field("prop", dsl.String()).Build())).
		Build()

	wantShape(t, mustResolve(t, s, "opt"), dsl.Object().Field("prop", dsl.String()).Build())
	wantShape(t, mustResolve(t, s, "opt.prop"), dsl.String())
}

func TestResolve_DictionaryBoundary(t *testing.T) {
	// value shape is itself nested; dotted descent past the key is one level
	value := dsl.Object().
		Field("inner", dsl.Object().Field("deep", dsl.Number()).Build()).
		Build()
	s := dsl.Map(value)

	wantShape(t, mustResolve(t, s, "foo"), value)
	wantShape(t, mustResolve(t, s, "foo.inner"), dsl.Object().Field("deep", dsl.Number()).Build())
	wantUnresolvable(t, s, "foo.inner.deep")
}

func TestResolve_DictionaryUnderField(t *testing.T) {
	s := dsl.Object().
		Field("attrs", dsl.Map(dsl.Object().Field("inner", dsl.Number()).Build())).
		Build()

	wantShape(t, mustResolve(t, s, "attrs.anything"), dsl.Object().Field("inner", dsl.Number()).Build())
	wantShape(t, mustResolve(t, s, "attrs.anything.inner"), dsl.Number())
	// under a dictionary, a bracketed segment is a literal key, not an index
	wantShape(t, mustResolve(t, s, "attrs.k[0]"), dsl.Object().Field("inner", dsl.Number()).Build())
}

func TestResolve_UnionDistribution(t *testing.T) {
	u := dsl.Union(
		dsl.Object().Field("id", dsl.Number()).Build(),
		dsl.Object().Field("code", dsl.String()).Build(),
	)
	s := dsl.Object().Field("list", dsl.Array(u)).Build()

	wantShape(t, mustResolve(t, s, "list[0].id"), dsl.Number())
	wantShape(t, mustResolve(t, s, "list[0].code"), dsl.String())
	wantUnresolvable(t, s, "list[0].other")
}

func TestResolve_UnionJoinsResults(t *testing.T) {
	u := dsl.Union(
		dsl.Object().Field("x", dsl.Number()).Build(),
		dsl.Object().Field("x", dsl.String()).Build(),
		dsl.Object().Field("x", dsl.Number()).Build(), // duplicate result collapses
	)

	wantShape(t, mustResolve(t, u, "x"), dsl.Union(dsl.Number(), dsl.String()))
}

func TestResolve_References(t *testing.T) {
	reg := goshape.NewRegistry()
	node := dsl.Object().
		Field("name", dsl.String()).
		Field("child", dsl.Optional(dsl.Ref("T"))).
		Build()
	reg.Define("T", node)
	opt := goshape.TraverseOpt{Registry: reg}

	wantShape(t, mustResolve(t, node, "child", opt), node)
	wantShape(t, mustResolve(t, node, "child.child.child.name", opt), dsl.String())
	// resolution is path-driven; depth well past the enumeration budget works
	wantShape(t, mustResolve(t, node,
		"child.child.child.child.child.child.child.child.name", opt), dsl.String())
}

func TestResolve_DanglingReferenceIsUnresolvable(t *testing.T) {
	s := dsl.Object().Field("x", dsl.Ref("missing")).Build()
	wantUnresolvable(t, s, "x")
	wantUnresolvable(t, s, "x.y")
}

// One schema mixing references, unions, dictionaries, and tuples, driving
// every rule in the dispatch table within a single resolution pass.
func TestResolve_CombinedRules(t *testing.T) {
	reg := goshape.NewRegistry()
	reg.Define("meta", dsl.Map(dsl.Union(
		dsl.Object().Field("n", dsl.Object().Field("x", dsl.Bool()).Build()).Build(),
		dsl.Map(dsl.Bool()),
	)))
	s := dsl.Object().
		Field("root", dsl.Object().
			Field("meta", dsl.Ref("meta")).
			Field("pair", dsl.Tuple(dsl.String(), dsl.Object().Field("n", dsl.Number()).Build())).
			Build()).
		Build()
	if err := reg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	opt := goshape.TraverseOpt{Registry: reg}

	// union value under the wildcard key joins both variants
	wantShape(t, mustResolve(t, s, "root.meta.k", opt), dsl.Union(
		dsl.Object().Field("n", dsl.Object().Field("x", dsl.Bool()).Build()).Build(),
		dsl.Map(dsl.Bool()),
	))
	// one dotted level into the value distributes over the union
	wantShape(t, mustResolve(t, s, "root.meta.k.n", opt), dsl.Union(
		dsl.Object().Field("x", dsl.Bool()).Build(),
		dsl.Bool(),
	))
	// a second dotted level is past the dictionary boundary
	wantUnresolvable(t, s, "root.meta.k.n.x", opt)

	wantShape(t, mustResolve(t, s, "root.pair[1].n", opt), dsl.Number())
}

func TestResolve_Malformed(t *testing.T) {
	s := dsl.Object().
		Field("a", dsl.Object().Field("b", dsl.String()).Build()).
		Field("items", dsl.Array(dsl.Number())).
		Build()

	for _, path := range []string{
		"",
		".",
		"a.",
		".a",
		"a..b",
		"nope",
		"a.b.c",
		"items[",
		"items[]",
		"items[x]",
		"items[0",
		"items[-1]",
		"[0]",
		"a[0]",
	} {
		wantUnresolvable(t, s, path)
	}
}
