package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	_, found, err := store.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, found, "missing file reads as empty")

	require.NoError(t, store.Set(ctx, KeyAccessToken, "T1"))
	require.NoError(t, store.Set(ctx, KeyUser, `{"email":"a@x.com"}`))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened := NewFileStore(path)
	token, found, err := reopened.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "T1", token)

	require.NoError(t, reopened.Delete(ctx, KeyAccessToken, KeyUser))
	_, found, err = store.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStoreCorruptedFileReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"T1","user":`), 0o600))

	store := NewFileStore(path)
	_, found, err := store.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Delete(ctx, KeyAccessToken, KeyUser))
	require.NoError(t, store.Set(ctx, KeyAccessToken, "T2"))

	token, found, err := NewFileStore(path).Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "T2", token)
}

func TestManagerRecoversFromCorruptedFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"T1","user":`), 0o600))

	m := NewManager(NewFileStore(path))
	require.NoError(t, m.Initialize(ctx))
	assert.False(t, m.Authenticated())

	require.NoError(t, m.Set(ctx, "T2", []byte(`{"email":"a@x.com"}`)))

	reloaded := NewManager(NewFileStore(path))
	require.NoError(t, reloaded.Initialize(ctx))
	assert.Equal(t, "T2", reloaded.Token())
	assert.Equal(t, "a@x.com", reloaded.User().Email())

	require.NoError(t, reloaded.Invalidate(ctx))
	again := NewManager(NewFileStore(path))
	require.NoError(t, again.Initialize(ctx))
	assert.False(t, again.Authenticated())
}

func TestFileStoreEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, found, err := NewFileStore(path).Get(context.Background(), KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestManagerWithFileStoreSurvivesReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	m := NewManager(NewFileStore(path))
	require.NoError(t, m.Set(ctx, "T1", []byte(`{"email":"a@x.com"}`)))

	reloaded := NewManager(NewFileStore(path))
	require.NoError(t, reloaded.Initialize(ctx))
	assert.Equal(t, "T1", reloaded.Token())
	assert.Equal(t, "a@x.com", reloaded.User().Email())
}
