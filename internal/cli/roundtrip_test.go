package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/treegrid/treegrid/pkg/errors"
	"github.com/treegrid/treegrid/pkg/history"
	pkgio "github.com/treegrid/treegrid/pkg/io"
	"github.com/treegrid/treegrid/pkg/tree"
)

const petsJSON = `{
  "pets": {
    "cats": ["Mia", "Felix"],
    "dogs": ["Rex"]
  },
  "wild": {
    "birds": ["Kea", "Tui"]
  }
}`

// runCLI executes the full command tree the way main does.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCmd(args)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestCLIRoundTripXLSX(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	source := filepath.Join(dir, "pets.json")
	artifact := filepath.Join(dir, "pets.xlsx")
	rebuilt := filepath.Join(dir, "rebuilt.json")
	require.NoError(t, os.WriteFile(source, []byte(petsJSON), 0o644))

	require.NoError(t, runCLI(t, "flatten", source, "-o", artifact))
	require.FileExists(t, artifact)

	require.NoError(t, runCLI(t, "nest", artifact, "-o", rebuilt))
	require.FileExists(t, rebuilt)

	original, err := pkgio.Import(source)
	require.NoError(t, err)
	back, err := pkgio.Import(rebuilt)
	require.NoError(t, err)
	assert.True(t, tree.Equal(original, back), "round trip should reproduce the document")
}

func TestCLIRoundTripSQLite(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	source := filepath.Join(dir, "pets.json")
	artifact := filepath.Join(dir, "pets.db")
	rebuilt := filepath.Join(dir, "rebuilt.json")
	require.NoError(t, os.WriteFile(source, []byte(petsJSON), 0o644))

	require.NoError(t, runCLI(t, "flatten", source, "-o", artifact))
	require.NoError(t, runCLI(t, "nest", artifact, "-o", rebuilt))

	original, err := pkgio.Import(source)
	require.NoError(t, err)
	back, err := pkgio.Import(rebuilt)
	require.NoError(t, err)
	assert.True(t, tree.Equal(original, back), "round trip should reproduce the document")
}

func TestCLIRoundTripTOML(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	source := filepath.Join(dir, "pets.toml")
	artifact := filepath.Join(dir, "pets.xlsx")
	rebuilt := filepath.Join(dir, "rebuilt.json")

	doc := `[pets]
cats = ["Mia", "Felix"]
dogs = ["Rex"]

[wild]
birds = ["Kea", "Tui"]
`
	require.NoError(t, os.WriteFile(source, []byte(doc), 0o644))

	require.NoError(t, runCLI(t, "flatten", source, "-o", artifact))
	require.NoError(t, runCLI(t, "nest", artifact, "-o", rebuilt))

	original, err := pkgio.Import(source)
	require.NoError(t, err)
	back, err := pkgio.Import(rebuilt)
	require.NoError(t, err)
	assert.True(t, tree.Equal(original, back), "TOML documents should round-trip through JSON output")
}

func TestCLIVerify(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	source := filepath.Join(t.TempDir(), "pets.json")
	require.NoError(t, os.WriteFile(source, []byte(petsJSON), 0o644))

	require.NoError(t, runCLI(t, "verify", source))
}

func TestCLIVerifyMismatch(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	source := filepath.Join(t.TempDir(), "person.json")
	require.NoError(t, os.WriteFile(source, []byte(`{"name": {"first": "Ada"}}`), 0o644))

	err := runCLI(t, "verify", source)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeVerifyMismatch))
}

func TestCLIFlattenMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	err := runCLI(t, "flatten", "no-such-file.json")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeFileNotFound))
}

func TestCLIFlattenDerivesDest(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	source := filepath.Join(dir, "pets.json")
	require.NoError(t, os.WriteFile(source, []byte(petsJSON), 0o644))

	require.NoError(t, runCLI(t, "flatten", source))
	assert.FileExists(t, filepath.Join(dir, "pets.xlsx"))
}

func TestCLIHistoryRecordsRuns(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	source := filepath.Join(dir, "pets.json")
	require.NoError(t, os.WriteFile(source, []byte(petsJSON), 0o644))

	require.NoError(t, runCLI(t, "flatten", source))

	hist, err := history.Open(historyPath())
	require.NoError(t, err)
	records, err := hist.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "flatten", records[0].Op)
	assert.Equal(t, history.StatusOK, records[0].Status)
}

func TestCLINoHistorySkipsJournal(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	source := filepath.Join(dir, "pets.json")
	require.NoError(t, os.WriteFile(source, []byte(petsJSON), 0o644))

	require.NoError(t, runCLI(t, "flatten", source, "--no-history"))

	hist, err := history.Open(historyPath())
	require.NoError(t, err)
	records, err := hist.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCLIConfigFlagSuppliesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	source := filepath.Join(dir, "pets.json")
	require.NoError(t, os.WriteFile(source, []byte(petsJSON), 0o644))
	cfgFile := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("no_history = true\n"), 0o644))

	require.NoError(t, runCLI(t, "flatten", source, "--config", cfgFile))

	hist, err := history.Open(historyPath())
	require.NoError(t, err)
	records, err := hist.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}
