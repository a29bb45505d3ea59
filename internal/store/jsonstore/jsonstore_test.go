package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/store"
)

func TestGetMissingKey(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	v, ok, err := s.Get(context.Background(), "todos")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSetThenGet(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "todos", `[{"title":"A","status":"Pending"}]`))
	require.NoError(t, s.Set(ctx, "todos", `[]`))

	v, ok, err := s.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	b, err := os.ReadFile(filepath.Join(dir, "todos.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestSetCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "todos", "[]"))
	assert.FileExists(t, filepath.Join(dir, "todos.json"))
}

func TestNewDefaultsToWorkingDir(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	s, err := New("")
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "todos.json"), s.Path("todos"))
}

func TestRejectsBadKey(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	err = s.Set(context.Background(), "../escape", "x")
	assert.ErrorIs(t, err, store.ErrInvalidKey)
	_, _, err = s.Get(context.Background(), "")
	assert.ErrorIs(t, err, store.ErrInvalidKey)
}

func TestSetFailsWhenDirIsAFile(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := &Store{Dir: blocker}
	assert.Error(t, s.Set(context.Background(), "todos", "[]"))
}
