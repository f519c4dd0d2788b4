// Package identity models the opaque caller identity supplied by the
// transport layer. A Principal is never parsed or derived; it is only
// stored and compared.
package identity

import (
	"context"
	"strings"
)

// Principal is an opaque, string-comparable caller token.
type Principal string

// Anonymous is the zero Principal, used when no caller is attached.
const Anonymous Principal = ""

// String returns the raw token text.
func (p Principal) String() string {
	return string(p)
}

// IsAnonymous reports whether the principal carries no identity.
func (p Principal) IsAnonymous() bool {
	return strings.TrimSpace(string(p)) == ""
}

// Equal compares two principals by normalized textual equality.
func (p Principal) Equal(other Principal) bool {
	return normalize(p) == normalize(other)
}

func normalize(p Principal) string {
	return strings.TrimSpace(string(p))
}

type ctxKey struct{}

// WithPrincipal returns a context carrying the given principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the principal attached to ctx, or Anonymous if the
// context carries none.
func FromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(ctxKey{}).(Principal); ok {
		return p
	}
	return Anonymous
}
