package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenKey(t *testing.T) {
	assert.Equal(t, uint64(42), TokenKey("42"), "Decimal tokens map to themselves")
	assert.Equal(t, xxhash.Sum64String("block/17"), TokenKey("block/17"), "Other tokens are hashed")
	assert.Equal(t, TokenKey("same"), TokenKey("same"), "Hashing must be stable")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2 3\nurl-a 1\n"), 0o644))

	keys, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, xxhash.Sum64String("url-a"), 1}, keys)
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
