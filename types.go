package goshape

// DefaultMaxDepth is the depth budget used when TraverseOpt.MaxDepth is zero.
const DefaultMaxDepth = 5

// Wildcard markers used in enumerated path patterns. WildcardIndex stands in
// for any valid literal integer; WildcardKey stands in for any dictionary
// key. Note "*" is itself a legal dictionary key, so patterns containing
// WildcardKey resolve verbatim.
const (
	WildcardIndex = "[*]"
	WildcardKey   = "*"
)

// TraverseOpt bundles traversal options for Paths/EnumeratePaths/Resolve.
type TraverseOpt struct {
	// MaxDepth is the depth budget for enumeration: it decreases by one on
	// every object-field or dictionary-value descent and never on index
	// descent. Zero means DefaultMaxDepth. It does not constrain Resolve,
	// which walks a finite path and needs no budget.
	MaxDepth int
	// Registry resolves Reference nodes. Reference-free graphs may leave it
	// nil.
	Registry *Registry
}

func pickOpt(opt []TraverseOpt) TraverseOpt {
	var o TraverseOpt
	if len(opt) > 0 {
		o = opt[0]
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxDepth < 0 {
		o.MaxDepth = 0
	}
	return o
}
