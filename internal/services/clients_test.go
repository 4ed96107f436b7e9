package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureClientInsertOrIgnore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.clients.EnsureClient(ctx, "jane@example.com", "Jane")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.clients.EnsureClient(ctx, "jane@example.com", "Janet Guess")
	require.NoError(t, err)
	assert.False(t, created)

	c, err := f.clients.ByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane", c.Name)

	all, err := f.clients.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRenameIsExplicit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.clients.EnsureClient(ctx, "bob@example.com", "")
	require.NoError(t, err)
	c, err := f.clients.ByEmail(ctx, "bob@example.com")
	require.NoError(t, err)

	require.NoError(t, f.clients.Rename(ctx, c.ID, " Bob Smith "))
	got, err := f.clients.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob Smith", got.Name)

	assert.ErrorIs(t, f.clients.Rename(ctx, 999, "x"), ErrNotFound)
}

func TestDeleteClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.clients.EnsureClient(ctx, "gone@example.com", "Gone")
	require.NoError(t, err)
	c, err := f.clients.ByEmail(ctx, "gone@example.com")
	require.NoError(t, err)

	require.NoError(t, f.clients.Delete(ctx, c.ID))
	_, err = f.clients.Get(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.clients.Delete(ctx, c.ID), ErrNotFound)
}
