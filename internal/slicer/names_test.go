package slicer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNames(t *testing.T) {
	names := DefaultNames()
	require.NoError(t, ValidateNames(DefaultGrid(), names))
	assert.Equal(t, "Knox-Ironlaw", names[1][1])

	names[0][0] = "mutated"
	assert.Equal(t, "Albert-Victor", DefaultNames()[0][0])
}

func TestGeneratedNames(t *testing.T) {
	names := GeneratedNames(Grid{Rows: 2, Cols: 2})
	assert.Equal(t, [][]string{{"portrait_1_1", "portrait_1_2"}, {"portrait_2_1", "portrait_2_2"}}, names)
}

func TestValidateNames(t *testing.T) {
	g := Grid{Rows: 2, Cols: 2}
	tests := []struct {
		name    string
		names   [][]string
		wantErr string
	}{
		{"ok", [][]string{{"a", "b"}, {"c", "d"}}, ""},
		{"row count", [][]string{{"a", "b"}}, "names have 1 rows"},
		{"col count", [][]string{{"a", "b"}, {"c"}}, "row 2 has 1 names"},
		{"empty", [][]string{{"a", " "}, {"c", "d"}}, "is empty"},
		{"separator", [][]string{{"a", "b"}, {"../c", "d"}}, "not a file name"},
		{"backslash", [][]string{{"a", `b\c`}, {"c", "d"}}, "not a file name"},
		{"duplicate", [][]string{{"a", "b"}, {"c", "a"}}, `duplicate name "a"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNames(g, tt.names)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "names.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- [Ada, Grace]\n- [Linus, Ken]\n"), 0644))

	names, err := LoadNames(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Ada", "Grace"}, {"Linus", "Ken"}}, names)
	assert.NoError(t, ValidateNames(Grid{Rows: 2, Cols: 2}, names))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rows: [1, 2\n"), 0644))
	_, err = LoadNames(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = LoadNames(empty)
	assert.ErrorContains(t, err, "no rows")

	_, err = LoadNames(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
