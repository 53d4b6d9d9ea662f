package fsutil

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/singlezone/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFiles(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"b.hcl":          "",
		"a.YAML":         "",
		"nested/c.yml":   "",
		"nested/d.json":  "",
		"nested/e.hcl.b": "",
	})

	got, err := FindFiles(dir, ".hcl", ".yaml", ".yml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.YAML"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "nested", "c.yml"),
	}, got)
}

func TestFindFiles_Errors(t *testing.T) {
	_, err := FindFiles(t.TempDir())
	assert.ErrorIs(t, err, ErrNoExtensions)

	_, err = FindFiles(filepath.Join(t.TempDir(), "missing"), ".hcl")
	assert.Error(t, err)
}
