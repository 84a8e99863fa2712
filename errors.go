package goshape

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnresolvable is the sole negative result of Resolve: the path has no
// valid shape under the schema. It is a total-function sentinel, not an
// exception; check it with errors.Is. It covers malformed path syntax,
// unknown fields, index access against non-indexable shapes, and anything
// else outside the grammar.
var ErrUnresolvable = errors.New("goshape: path does not resolve")

// unresolvable wraps ErrUnresolvable with the offending path text.
func unresolvable(path string) error {
	return fmt.Errorf("%w: %q", ErrUnresolvable, path)
}

// IsUnresolvable reports whether err is the Resolve failure sentinel.
func IsUnresolvable(err error) bool { return errors.Is(err, ErrUnresolvable) }

// Issue codes for construction-time defects reported by Registry.
const (
	CodeDanglingReference   = "dangling_reference"
	CodeDuplicateDefinition = "duplicate_definition"
	CodeEmptyUnion          = "empty_union"
	CodeBlankField          = "blank_field"
)

// Issue represents a single schema-construction defect.
type Issue struct {
	Path    string // Slash path into the schema graph (for example: /T/child).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional remediation hint.
	Cause   error  // Optional underlying error.
}

// Issues is a collection of construction defects that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
