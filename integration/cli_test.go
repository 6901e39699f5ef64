//go:build basic

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFileBackend exercises the plotting commands against a document on disk.
func TestFileBackend(t *testing.T) {
	source := writeFixture(t)
	env := []string{"BINBRIDGE_STORE_BACKEND=file", "BINBRIDGE_SOURCE=" + source, "BINBRIDGE_COLOR=no"}

	out, err := runCommand(t, env, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "eta_phi")
	assert.Contains(t, out, "Scope")

	out, err = runCommand(t, env, "points", "pt", "--rebin", "2", "--output", "json")
	require.NoError(t, err)
	var points struct {
		X []float64 `json:"x"`
		Y []float64 `json:"y"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &points))
	assert.Equal(t, []float64{10, 30}, points.X)
	assert.Equal(t, []float64{6, 14}, points.Y)

	out, err = runCommand(t, env, "bar", "pt", "--norm", "--output", "json")
	require.NoError(t, err)
	var bars struct {
		Y []float64 `json:"y"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &bars))
	assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.3, 0.4}, bars.Y, 1e-12)

	_, err = runCommand(t, env, "points", "pt", "--norm", "--norm-to", "pt")
	assert.Error(t, err)

	out, err = runCommand(t, env, "points", "met", "--scope", "run1", "--output", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "x,y,yerr,yerr_low,yerr_high")

	out, err = runCommand(t, env, "heatmap", "eta_phi", "--output", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "1.000,2.000,0.000,5.000,\n")

	_, err = runCommand(t, env, "points", "notes")
	assert.Error(t, err)
}

// TestSQLiteStore imports the fixture into a SQLite store and reads it back.
func TestSQLiteStore(t *testing.T) {
	dir := t.TempDir()
	env := []string{
		"BINBRIDGE_STORE_BACKEND=sqlite",
		"BINBRIDGE_STORE_CONNECT=" + filepath.Join(dir, "store.db"),
	}

	_, err := runCommand(t, env, "store", "migrate")
	require.NoError(t, err)

	out, err := runCommand(t, env, "store", "import", writeFixture(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")

	out, err = runCommand(t, env, "project", "eta_phi", "--axis", "y", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"y": [`)

	out, err = runCommand(t, env, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite")

	exported := filepath.Join(dir, "export.json.xz")
	_, err = runCommand(t, env, "store", "export", "--output-file", exported)
	require.NoError(t, err)
	info, err := os.Stat(exported)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = runCommand(t, env, "store", "clear")
	require.NoError(t, err)
	_, err = runCommand(t, env, "points", "pt")
	assert.Error(t, err)
}
