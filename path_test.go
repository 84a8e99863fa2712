package goshape_test

import (
	"testing"

	goshape "github.com/reoring/goshape"
)

func TestPathBuilder(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"empty", goshape.Path().String(), ""},
		{"field chain", goshape.Path().Field("a").Field("b").String(), "a.b"},
		{"field index field", goshape.Path().Field("items").Index(0).Field("name").String(), "items[0].name"},
		{"root index", goshape.Path().Index(2).String(), "[2]"},
		{"chained indexes", goshape.Path().Field("m").Index(1).Index(3).String(), "m[1][3]"},
		{"any index", goshape.Path().Field("items").AnyIndex().Field("id").String(), "items[*].id"},
		{"key is field", goshape.Path().Field("attrs").Key("color").String(), "attrs.color"},
		{"empty field ignored", goshape.Path().Field("a").Field("").Field("b").String(), "a.b"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestPathBuilder_Branching(t *testing.T) {
	// builders are values; extending one branch must not disturb another
	base := goshape.Path().Field("items").Index(0)
	a := base.Field("id").String()
	b := base.Field("name").String()
	if a != "items[0].id" || b != "items[0].name" {
		t.Fatalf("branches interfered: %q, %q", a, b)
	}
}
