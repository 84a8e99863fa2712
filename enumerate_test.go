package goshape_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
)

func sortedPaths(s goshape.Schema, opt ...goshape.TraverseOpt) []string {
	out := goshape.EnumeratePaths(s, opt...)
	sort.Strings(out)
	return out
}

func wantPaths(t *testing.T, got, want []string) {
	t.Helper()
	sort.Strings(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumerate_FlatObject(t *testing.T) {
	s := dsl.Object().
		Field("id", dsl.Number()).
		Field("name", dsl.String()).
		Build()
	wantPaths(t, sortedPaths(s), []string{"id", "name"})
}

func TestEnumerate_ArrayPatterns(t *testing.T) {
	item := dsl.Object().
		Field("id", dsl.Number()).
		Field("tags", dsl.Array(dsl.String())).
		Build()
	s := dsl.Object().Field("items", dsl.Array(item)).Build()

	wantPaths(t, sortedPaths(s), []string{
		"items",
		"items[*]",
		"items[*].id",
		"items[*].tags",
		"items[*].tags[*]",
	})
}

func TestEnumerate_TuplePatterns(t *testing.T) {
	s := dsl.Object().
		Field("pair", dsl.Tuple(dsl.String(), dsl.Object().Field("n", dsl.Number()).Build())).
		Build()

	// the bare pattern uses the wildcard; slot continuations use the literal
	// slot index, and the terminal slot adds nothing
	wantPaths(t, sortedPaths(s), []string{"pair", "pair[*]", "pair[1].n"})
}

func TestEnumerate_DictionaryStopsAfterOneLevel(t *testing.T) {
	value := dsl.Object().
		Field("inner", dsl.Number()).
		Field("deep", dsl.Object().Field("x", dsl.String()).Build()).
		Build()
	s := dsl.Object().Field("attrs", dsl.Map(value)).Build()

	// deep.x is beyond the dotted-level boundary and must not appear
	wantPaths(t, sortedPaths(s), []string{
		"attrs",
		"attrs.*",
		"attrs.*.deep",
		"attrs.*.inner",
	})
}

func TestEnumerate_NestedDictionaries(t *testing.T) {
	s := dsl.Map(dsl.Map(dsl.Number()))
	wantPaths(t, sortedPaths(s), []string{"*", "*.*"})
}

func TestEnumerate_UnionMergesVariantPaths(t *testing.T) {
	s := dsl.Union(
		dsl.Object().Field("id", dsl.Number()).Build(),
		dsl.Object().Field("id", dsl.String()).Build(),
		dsl.Object().Field("code", dsl.String()).Build(),
	)
	wantPaths(t, sortedPaths(s), []string{"code", "id"})
}

func TestEnumerate_DepthBound(t *testing.T) {
	reg := goshape.NewRegistry()
	node := dsl.Object().
		Field("name", dsl.String()).
		Field("child", dsl.Optional(dsl.Ref("T"))).
		Build()
	reg.Define("T", node)

	got := goshape.EnumeratePaths(node, goshape.TraverseOpt{MaxDepth: 5, Registry: reg})
	want := []string{
		"name",
		"child",
		"child.name",
		"child.child",
		"child.child.name",
		"child.child.child",
		"child.child.child.name",
		"child.child.child.child",
		"child.child.child.child.name",
		"child.child.child.child.child",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumerate_ZeroDepth(t *testing.T) {
	s := dsl.Object().Field("id", dsl.Number()).Build()
	if got := goshape.EnumeratePaths(s, goshape.TraverseOpt{MaxDepth: -1}); len(got) != 0 {
		t.Fatalf("paths = %v, want none", got)
	}
}

func TestEnumerate_IndexDescentIsFree(t *testing.T) {
	// arrays nest arbitrarily without consuming the budget
	s := dsl.Array(dsl.Array(dsl.Array(dsl.Array(dsl.Object().Field("v", dsl.Number()).Build()))))
	wantPaths(t, sortedPaths(s, goshape.TraverseOpt{MaxDepth: 2}), []string{
		"[*]",
		"[*][*]",
		"[*][*][*]",
		"[*][*][*][*]",
		"[*][*][*][*].v",
	})
}

func TestEnumerate_DanglingReferenceContributesNothing(t *testing.T) {
	s := dsl.Object().
		Field("ok", dsl.Number()).
		Field("bad", dsl.Ref("missing")).
		Build()
	wantPaths(t, sortedPaths(s), []string{"bad", "ok"})
}

func TestPaths_LazyStop(t *testing.T) {
	reg := goshape.NewRegistry()
	node := dsl.Object().
		Field("name", dsl.String()).
		Field("child", dsl.Ref("T")).
		Build()
	reg.Define("T", node)

	var got []string
	for p := range goshape.Paths(node, goshape.TraverseOpt{MaxDepth: 100, Registry: reg}) {
		got = append(got, p)
		if len(got) == 3 {
			break
		}
	}
	want := []string{"name", "child", "child.name"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("prefix mismatch (-want +got):\n%s", diff)
	}
}
