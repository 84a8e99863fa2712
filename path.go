package goshape

import (
	"strconv"
	"strings"
)

// PathBuilder assembles access paths in a chain-safe way. Each call returns a
// new builder; intermediate values may be kept and extended independently.
//
//	Path().Field("items").Index(0).Field("name").String() // "items[0].name"
type PathBuilder struct {
	buf string
}

// Path returns an empty root builder.
func Path() PathBuilder { return PathBuilder{} }

// Field appends a field-name segment. Empty names are ignored.
func (p PathBuilder) Field(name string) PathBuilder {
	if name == "" {
		return p
	}
	return PathBuilder{buf: joinPath(p.buf, name)}
}

// Index appends a literal bracket-index segment.
func (p PathBuilder) Index(i int) PathBuilder {
	return PathBuilder{buf: p.buf + "[" + strconv.Itoa(i) + "]"}
}

// AnyIndex appends the wildcard-index marker used by enumerated patterns.
func (p PathBuilder) AnyIndex() PathBuilder {
	return PathBuilder{buf: p.buf + WildcardIndex}
}

// Key appends a dictionary-key segment. Keys are appended verbatim; a key
// containing a separator will not survive a round trip through Resolve.
func (p PathBuilder) Key(k string) PathBuilder { return p.Field(k) }

// String returns the assembled path.
func (p PathBuilder) String() string { return p.buf }

// joinPath appends one enumerated sub-pattern to a prefix: bracket chains
// attach directly, everything else through the separator.
func joinPath(prefix, seg string) string {
	if prefix == "" {
		return seg
	}
	if strings.HasPrefix(seg, "[") {
		return prefix + seg
	}
	return prefix + "." + seg
}

// cutIndex consumes one leading "[n]" group of k. Only literal non-negative
// integer text is accepted between the brackets; anything else makes the
// group malformed.
func cutIndex(k string) (n int, rest string, ok bool) {
	if !strings.HasPrefix(k, "[") {
		return 0, "", false
	}
	end := strings.IndexByte(k, ']')
	if end < 2 { // "[]" or unbalanced
		return 0, "", false
	}
	body := k[1:end]
	n, err := strconv.Atoi(body)
	if err != nil || n < 0 || body[0] == '+' {
		return 0, "", false
	}
	return n, k[end+1:], true
}
