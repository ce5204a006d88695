package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskLifecycle(t *testing.T) {
	ctx := context.Background()
	d := NewLocal(t.TempDir())

	ok, err := d.Exists(ctx, "a.json")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = d.Get(ctx, "a.json")
	assert.True(t, IsNotExist(err))

	require.NoError(t, d.Put(ctx, "a.json", []byte(`{"x":1}`)))
	require.NoError(t, d.Put(ctx, "a.json", []byte(`{"x":2}`)))

	got, err := d.Get(ctx, "a.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":2}`, string(got))

	files, err := d.Files(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json"}, files)

	require.NoError(t, d.Delete(ctx, "a.json"))
	require.NoError(t, d.Delete(ctx, "a.json"))
	ok, err = d.Exists(ctx, "a.json")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalFilesOnMissingDirectory(t *testing.T) {
	files, err := NewLocal(t.TempDir()).Files(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, files)
}
