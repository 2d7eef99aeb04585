package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faultyReader fails after yielding a prefix, simulating a connection drop
// mid-upload.
type faultyReader struct {
	prefix []byte
	read   bool
}

func (r *faultyReader) Read(p []byte) (int, error) {
	if !r.read {
		r.read = true
		n := copy(p, r.prefix)
		return n, nil
	}
	return 0, errors.New("stream interrupted")
}

func setupFSStore(t *testing.T) *FileSystemStore {
	store, err := NewFileSystemStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFileSystemStore_PutOpenRoundTrip(t *testing.T) {
	store := setupFSStore(t)
	ctx := context.Background()

	content := []byte("conteudo do contrato assinado")
	err := store.Put(ctx, "abc123.pdf", bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)

	rc, err := store.Open(ctx, "abc123.pdf")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFileSystemStore_PutFailureLeavesNothing(t *testing.T) {
	store := setupFSStore(t)
	ctx := context.Background()

	err := store.Put(ctx, "broken.bin", &faultyReader{prefix: []byte("partial")}, 1024)
	require.Error(t, err)

	// No partial blob retrievable under the key
	_, err = store.Open(ctx, "broken.bin")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	// No leftover temp files either
	entries, err := os.ReadDir(store.root)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".upload-"), "temp file left behind: %s", e.Name())
	}
}

func TestFileSystemStore_PutSizeMismatch(t *testing.T) {
	store := setupFSStore(t)
	ctx := context.Background()

	err := store.Put(ctx, "short.bin", strings.NewReader("abc"), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size mismatch")

	_, err = store.Open(ctx, "short.bin")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestFileSystemStore_DeleteIdempotent(t *testing.T) {
	store := setupFSStore(t)
	ctx := context.Background()

	content := []byte("x")
	require.NoError(t, store.Put(ctx, "one.txt", bytes.NewReader(content), 1))

	require.NoError(t, store.Delete(ctx, "one.txt"))
	// Second delete of the same key is not an error
	require.NoError(t, store.Delete(ctx, "one.txt"))

	_, err := store.Open(ctx, "one.txt")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestFileSystemStore_OpenMissing(t *testing.T) {
	store := setupFSStore(t)

	_, err := store.Open(context.Background(), "nunca-existiu.pdf")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestFileSystemStore_KeyCannotEscapeRoot(t *testing.T) {
	store := setupFSStore(t)
	ctx := context.Background()

	content := []byte("dados")
	require.NoError(t, store.Put(ctx, "../escape.txt", bytes.NewReader(content), int64(len(content))))

	// The blob lands inside the root, not the parent directory
	_, err := os.Stat(filepath.Join(store.root, "escape.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(store.root), "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileSystemStore_Ping(t *testing.T) {
	store := setupFSStore(t)
	assert.NoError(t, store.Ping(context.Background()))

	missing := &FileSystemStore{root: filepath.Join(t.TempDir(), "does-not-exist")}
	assert.Error(t, missing.Ping(context.Background()))
}
