package compose

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuildOverride(t *testing.T) {
	t.Parallel()

	f := BuildOverride("3.7")
	require.Equal(t, "3.7", f.Version)
	require.Len(t, f.Services, 2)

	dev := f.Services["phpmyadmin"]
	require.Equal(t, "phpmyadmin", dev.ContainerName)
	require.Equal(t, []string{"9000:80"}, dev.Ports)
	require.Equal(t, "mysql", dev.Environment["PMA_HOST"])

	tests := f.Services["tests-phpmyadmin"]
	require.Equal(t, "tests-phpmyadmin", tests.ContainerName)
	require.Equal(t, []string{"9090:80"}, tests.Ports)
	require.Equal(t, "tests-mysql", tests.Environment["PMA_HOST"])
}

func TestWriteOverrideKeepsBaseVersion(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	base := "version: '3.7'\nservices:\n  mysql:\n    image: mariadb\n"
	require.NoError(t, afero.WriteFile(fs, "/work/docker-compose.yml", []byte(base), 0o644))

	path, err := WriteOverride(fs, "/work")
	require.NoError(t, err)
	require.Equal(t, "/work/docker-compose.override.yml", path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	var got File
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Equal(t, "3.7", got.Version)
	require.Equal(t, BuildOverride("3.7"), got)
}

func TestWriteOverrideWithoutBaseFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path, err := WriteOverride(fs, "/fresh")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "version:")
	require.Contains(t, string(data), "tests-phpmyadmin")
}

func TestBaseVersionRejectsBrokenYAML(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/docker-compose.yml", []byte("services: [\n"), 0o644))

	_, err := BaseVersion(fs, "/work")
	require.Error(t, err)
}
