package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := openTemp(t)

	dst := map[string]float64{"untouched": 1}
	found, err := s.Get(context.Background(), "nothing", &dst)
	require.NoError(t, err)

	assert.False(t, found)
	assert.Equal(t, map[string]float64{"untouched": 1}, dst)
}

func TestSetGetRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "rankings", map[string]float64{"lincoln ab": 6, "lincoln ba": 6}))

	var got map[string]float64
	found, err := s.Get(ctx, "rankings", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, map[string]float64{"lincoln ab": 6, "lincoln ba": 6}, got)
}

func TestSetLastWriterWins(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "notes", map[string]string{"a": "1"}))
	require.NoError(t, s.Set(ctx, "notes", map[string]string{"b": "2"}))

	var got map[string]string
	_, err := s.Get(ctx, "notes", &got)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"b": "2"}, got)
}

func TestDelete(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", 1))
	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))

	var v int
	found, err := s.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReopenKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	var v string
	found, err := s.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)
}

func TestGetDecodeError(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "a string"))

	var n int
	_, err := s.Get(ctx, "k", &n)
	assert.Error(t, err)
}
