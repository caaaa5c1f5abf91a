package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadScraperFile(t *testing.T) {
	dir := t.TempDir()

	list := filepath.Join(dir, "list.json")
	require.NoError(t, os.WriteFile(list, []byte(`[{"fecha":"2024-03-01","descripcion":"LIDER","monto":-1000}]`), 0o644))
	got, err := readScraperFile(list)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "LIDER", got[0].Descripcion)

	wrapped := filepath.Join(dir, "wrapped.json")
	require.NoError(t, os.WriteFile(wrapped, []byte(`{"movements":[{"fecha":"2024-03-01","descripcion":"A","monto":1},{"fecha":"2024-03-02","descripcion":"B","monto":2}]}`), 0o644))
	got, err = readScraperFile(wrapped)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`nope`), 0o644))
	_, err = readScraperFile(broken)
	assert.Error(t, err)
}
