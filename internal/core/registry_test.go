package core

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"curalink.io/coordination-service/internal/identity"
	"curalink.io/coordination-service/internal/store"
)

func newTestRegistry(t *testing.T, policy Policy) *Registry {
	t.Helper()
	db, err := store.Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRegistry(db, policy, zerolog.Nop())
}

func asCaller(p string) context.Context {
	return identity.WithPrincipal(context.Background(), identity.Principal(p))
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
