package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"github.com/xuri/excelize/v2"

	"github.com/jaywantadh/GradeByte/pkg/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestExtractCommand(t *testing.T) {
	logging.InitLogger(false)
	path := filepath.Join(t.TempDir(), "gpt.txt")
	writeFile(t, path, "5: Berlin\n90. Capital of Japan?\nAnswer: Tokyo\n")

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"grader", "extract", "--variant", "dual", path})
	require.NoError(t, err)
	assert.Equal(t, "5\tBerlin\n90\tTokyo\n", out.String())
}

func TestExtractCommandRejectsVariant(t *testing.T) {
	logging.InitLogger(false)
	var out bytes.Buffer
	err := newApp(&out).Run([]string{"grader", "extract", "--variant", "ocr", "x.txt"})
	assert.Error(t, err)
}

func TestGradeAndHistoryCommands(t *testing.T) {
	logging.InitLogger(false)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "key.txt"), "1. Q\n(4) - Paris\n2. Q\n(*) - Oxygen\n")
	writeFile(t, filepath.Join(dir, "alpha.txt"), "1. paris\n2. Nitrogen\n")
	writeFile(t, filepath.Join(dir, "config.yaml"), `questions: 2
key_path: `+filepath.Join(dir, "key.txt")+`
output_path: `+filepath.Join(dir, "results.xlsx")+`
cache_dir: `+filepath.Join(dir, "db")+`
archive_dir: `+filepath.Join(dir, "archive")+`
models:
  - name: Alpha
    path: `+filepath.Join(dir, "alpha.txt")+`
    variant: simple
`)

	var out bytes.Buffer
	require.NoError(t, newApp(&out).Run([]string{"grader", "--config", dir, "grade"}))
	assert.Equal(t, "Alpha       50.00\n", out.String())

	f, err := excelize.OpenFile(filepath.Join(dir, "results.xlsx"))
	require.NoError(t, err)
	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	f.Close()
	assert.Equal(t, []string{"Average", "50"}, rows[len(rows)-1])

	out.Reset()
	require.NoError(t, newApp(&out).Run([]string{"grader", "--config", dir, "history"}))
	assert.Contains(t, out.String(), "Alpha=50.00")

	runID := strings.Fields(out.String())[2]
	dest := filepath.Join(dir, "restored.xlsx")
	require.NoError(t, newApp(&out).Run([]string{"grader", "--config", dir, "fetch", runID, dest}))
	want, err := os.ReadFile(filepath.Join(dir, "results.xlsx"))
	require.NoError(t, err)
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	err = newApp(&out).Run([]string{"grader", "--config", dir, "fetch", "no-such-run", dest})
	assert.Error(t, err)
}

func TestFetchCommandNeedsArguments(t *testing.T) {
	logging.InitLogger(false)
	code := 0
	cli.OsExiter = func(c int) { code = c }
	defer func() { cli.OsExiter = os.Exit }()

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"grader", "--config", t.TempDir(), "fetch", "only-one"})
	assert.Error(t, err)
	assert.Equal(t, 2, code)
}
