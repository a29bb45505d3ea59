package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(context.Background(), dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, filepath.Join(dir, FileName), s.Path())
	assert.FileExists(t, s.Path())
}

func TestGetSetOverwrite(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, ok, err := s.Get(ctx, "todos")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "todos", `[{"title":"A","status":"Pending"}]`))
	require.NoError(t, s.Set(ctx, "todos", `[{"title":"B","status":"Completed"}]`))

	v, ok, err := s.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"title":"B","status":"Completed"}]`, v)
}

func TestValuesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "todos", "[]"))
	require.NoError(t, s.Close())

	s2, err := Open(ctx, dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })

	v, ok, err := s2.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}
