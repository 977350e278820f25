package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLocalStoragePutGetDelete: vòng đời cơ bản của một object trên đĩa.
func TestLocalStoragePutGetDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	written, err := store.Put(ctx, "uploads/a.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), written, "Put phải trả về số byte đã ghi")

	reader, err := store.Get(ctx, "uploads/a.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	reader.Close()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, store.Delete(ctx, "uploads/a.txt"))
	_, err = store.Get(ctx, "uploads/a.txt")
	assert.Error(t, err, "Get sau khi Delete phải lỗi")
}

// TestLocalStorageRejectsTraversalKeys: key thoát ra ngoài thư mục gốc phải
// bị chặn ở cả ba thao tác.
func TestLocalStorageRejectsTraversalKeys(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	badKeys := []string{"../escape.txt", "..", "/etc/passwd", "a/../../b.txt", "."}
	for _, key := range badKeys {
		_, err := store.Put(ctx, key, strings.NewReader("x"))
		assert.Error(t, err, "Put với key %q phải bị từ chối", key)
		_, err = store.Get(ctx, key)
		assert.Error(t, err, "Get với key %q phải bị từ chối", key)
		assert.Error(t, store.Delete(ctx, key), "Delete với key %q phải bị từ chối", key)
	}
}

// TestLocalStorageDeleteMissingIsNoop: xóa key không tồn tại không được coi
// là lỗi, metadata có thể đã bị xóa trước object.
func TestLocalStorageDeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, store.Delete(context.Background(), "not-there.bin"))
}

// TestNewLocalStorageCreatesRoot: thư mục gốc chưa tồn tại phải được tạo.
func TestNewLocalStorageCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocalStorage(root)
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = NewLocalStorage("")
	assert.Error(t, err, "root rỗng phải bị từ chối")
}
