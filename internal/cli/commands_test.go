package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPackages = filepath.Join("..", "..", "test_files")

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestShowSingle(t *testing.T) {
	out, _, err := runCommand(t, "show", filepath.Join(testPackages, "single"), "--rows", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Table: emissions\nRows: 3\n")
	assert.Contains(t, out, "Name: count\nType: int64\n0:  10\n")
	assert.NotContains(t, out, "1:  ")
}

func TestShowFilterVerbose(t *testing.T) {
	out, errOut, err := runCommand(t, "show", filepath.Join(testPackages, "multi"), "-r", "countries", "-v")
	require.NoError(t, err)

	assert.Contains(t, out, "Table: countries")
	assert.NotContains(t, out, "population")
	assert.Contains(t, errOut, "[VERBOSE] read resource countries")
}

func TestResources(t *testing.T) {
	out, _, err := runCommand(t, "resources", filepath.Join(testPackages, "multi"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[2], "notes")
	assert.Contains(t, lines[2], "false")
	assert.True(t, strings.HasPrefix(lines[3], "2 "))
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	_, errOut, err := runCommand(t, "export", filepath.Join(testPackages, "multi"), "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, errOut, "wrote")

	b, err := os.ReadFile(filepath.Join(dir, "countries.csv"))
	require.NoError(t, err)
	assert.Equal(t, "code,name\nDEU,Germany\nFRA,France\n", string(b))

	_, err = os.Stat(filepath.Join(dir, "2.csv"))
	assert.NoError(t, err)
}

func TestExportParquetFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dpread.yaml")
	cfg := "format: parquet\noutput_dir: " + filepath.Join(dir, "out") + "\nresources: [emissions]\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	_, _, err := runCommand(t, "export", filepath.Join(testPackages, "single"), "--config", cfgPath)
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "out", "emissions.parquet"))
	require.NoError(t, err)
	assert.Equal(t, "PAR1", string(b[:4]))
}

func TestExportUnknownFormat(t *testing.T) {
	_, _, err := runCommand(t, "export", filepath.Join(testPackages, "single"), "-f", "xlsx", "-o", t.TempDir())
	assert.Error(t, err)
}

func TestShowMissingPackage(t *testing.T) {
	_, _, err := runCommand(t, "show", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := runCommand(t, "show", filepath.Join(testPackages, "single"), "--config", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	version = "1.2.3"
	out, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "dpread 1.2.3 "))
}

func TestExportRejectsEscapingNames(t *testing.T) {
	pkg := t.TempDir()
	manifest := `{"resources": [{"name": "ok", "path": "a.csv"}, {"name": "../escaped", "path": "a.csv"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "datapackage.json"), []byte(manifest), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "a.csv"), []byte("x\n1\n"), 0644))

	root := t.TempDir()
	out := filepath.Join(root, "out")
	_, _, err := runCommand(t, "export", pkg, "--out", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "../escaped")

	_, err = os.Stat(filepath.Join(root, "escaped.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, "ok.csv"))
	assert.True(t, os.IsNotExist(err), "nothing is written when a name is rejected")
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()

	path, err := outputPath(dir, "emissions", "csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "emissions.csv"), path)

	path, err = outputPath(dir, "v1.2", "parquet")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "v1.2.parquet"), path)

	for _, name := range []string{"", ".", "..", "../up", "a/b", `a\b`, "/abs"} {
		_, err := outputPath(dir, name, "csv")
		assert.Error(t, err, name)
	}
}
