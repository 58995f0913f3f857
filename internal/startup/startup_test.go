package startup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareExePath_Absolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "machete")

	got, err := prepareExePath(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, got)
}

func TestPrepareExePath_Relative(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "machete"), nil, 0o755))
	chdir(t, dir)

	got, err := prepareExePath("machete")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "machete"), got)
}

func TestPrepareExePath_MissingRelative(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := prepareExePath("does-not-exist")
	assert.Error(t, err)
}

// chdir changes the working directory for the rest of the test and restores
// it afterwards, like testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
