package confkit_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"quanport/pkg/confkit"
)

func TestResolvePath(t *testing.T) {
	require.Equal(t, "/abs/file.yaml", confkit.ResolvePath("/base", "/abs/file.yaml"))
	require.Equal(t, filepath.Join("/base", "etc", "file.yaml"), confkit.ResolvePath("/base", "etc/file.yaml"))

	os.Setenv("CONFKIT_TEST_DIR", "expanded")
	defer os.Unsetenv("CONFKIT_TEST_DIR")
	require.Equal(t, filepath.Join("/base", "expanded", "file.yaml"),
		confkit.ResolvePath("/base", "${CONFKIT_TEST_DIR}/file.yaml"))
}

func TestLoadFile(t *testing.T) {
	type sample struct {
		Name  string `json:",default=fallback"`
		Count int    `json:",default=3"`
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Name: loaded\n"), 0o600))

	cfg, err := confkit.LoadFile[sample](path, false)
	require.NoError(t, err)
	require.Equal(t, "loaded", cfg.Name)
	require.Equal(t, 3, cfg.Count)

	_, err = confkit.LoadFile[sample](filepath.Join(dir, "missing.yaml"), false)
	require.Error(t, err)
}

func TestSectionHydrate(t *testing.T) {
	type sample struct {
		Name string `json:",optional"`
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "section.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Name: section\n"), 0o600))

	s := confkit.Section[sample]{File: "section.yaml"}
	require.NoError(t, s.Hydrate(dir, func(p string) (*sample, error) {
		return confkit.LoadFile[sample](p, false)
	}))
	require.NotNil(t, s.Value)
	require.Equal(t, "section", s.Value.Name)
	require.Equal(t, path, s.File)

	empty := confkit.Section[sample]{}
	require.NoError(t, empty.Hydrate(dir, nil))
	require.Nil(t, empty.Value)
}
