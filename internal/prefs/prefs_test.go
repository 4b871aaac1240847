package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFileYieldsEmptyStore(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "prefs.txt"))
	require.NoError(t, err)

	_, ok := s.Get(KeyDarkMode)
	assert.False(t, ok)
	assert.False(t, s.GetBool(KeyDarkMode))
}

func TestSetPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.txt")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetBool(KeyDarkMode, true))
	require.NoError(t, s.SetBool(KeyLampOnLaunch, false))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.True(t, reopened.GetBool(KeyDarkMode))
	assert.False(t, reopened.GetBool(KeyLampOnLaunch))

	v, ok := reopened.Get(KeyLampOnLaunch)
	require.True(t, ok)
	assert.Equal(t, "false", v)
}

func TestSetOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.txt")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("foo", "1"))
	require.NoError(t, s.Set("foo", "2"))

	v, ok := s.Get("foo")
	require.True(t, ok)
	assert.Equal(t, "2", v)

	reopened, err := Open(path)
	require.NoError(t, err)
	v, _ = reopened.Get("foo")
	assert.Equal(t, "2", v)
}

func TestMalformedLinesIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\n\nnot a pair\ndark_mode=true\n"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.True(t, s.GetBool(KeyDarkMode))

	_, ok := s.Get("not a pair")
	assert.False(t, ok)
}

func TestNoStaleTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.txt")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "v"))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
