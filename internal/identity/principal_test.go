package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipalEqual(t *testing.T) {
	assert.True(t, Principal("alice").Equal(Principal("alice")))
	assert.True(t, Principal(" alice ").Equal(Principal("alice")))
	assert.False(t, Principal("alice").Equal(Principal("Alice")))
	assert.False(t, Principal("alice").Equal(Principal("bob")))
}

func TestPrincipalAnonymous(t *testing.T) {
	assert.True(t, Anonymous.IsAnonymous())
	assert.True(t, Principal("  ").IsAnonymous())
	assert.False(t, Principal("alice").IsAnonymous())
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Anonymous, FromContext(ctx))

	ctx = WithPrincipal(ctx, Principal("alice"))
	assert.Equal(t, Principal("alice"), FromContext(ctx))
}
