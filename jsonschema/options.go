package jsonschema

import "fmt"

// Options controls import behavior.
type Options struct {
	// AllowDanglingRefs skips the eager reference check after import. Useful
	// for partial bundles whose $defs arrive in a later document; the caller
	// owns running Registry.Validate before path operations.
	AllowDanglingRefs bool
}

// Diag carries non-fatal warnings produced during import. Unsupported
// keywords degrade to an opaque terminal with a warning, never an error.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }
