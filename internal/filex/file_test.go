package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNested(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, "a", "b")

	got, err := EnsureDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm())
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "keys")

	first, err := EnsureDir(dir)
	require.NoError(t, err)
	second, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsWhenFileInTheWay(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "file")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))

	_, err := EnsureDir(p)
	require.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	p := filepath.Join(t.TempDir(), "identity.json")
	require.False(t, Exists(p))

	require.NoError(t, WriteFileAtomic(p, []byte("one"), 0o600))
	require.NoError(t, WriteFileAtomic(p, []byte("two"), 0o600))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, "two", string(data))
	require.True(t, Exists(p))

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(p)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(p))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must not be left behind")
}
