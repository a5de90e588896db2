package analyze

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/nloc/internal/logger"
	"github.com/phobologic/nloc/internal/model"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func lines(n int, line string) string {
	return strings.Repeat(line+"\n", n)
}

func TestRunAggregatesUnsupportedAsZero(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n"+lines(9, "var _ = 1"))
	writeFile(t, dir, "README.md", "# Title\n\ntext\n")
	writeFile(t, dir, "lib/b.py", lines(5, "x = 1"))

	res, err := Run(Options{Target: dir}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Summary.Files)
	assert.Equal(t, 15, res.Summary.Loc.Total)
	assert.False(t, res.Summary.Loc.Unsupported)

	md := res.Files[filepath.Join(dir, "README.md")]
	require.NotNil(t, md)
	assert.True(t, md.Sloc.Unsupported)
	assert.Equal(t, 10, res.Files[filepath.Join(dir, "a.go")].Sloc.Total)
}

func TestRunSingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", "package main\n\n// entry\nfunc main() {}\n")

	var called bool
	res, err := Run(Options{Target: path}, func(err error, got *model.Result) {
		called = true
		assert.NoError(t, err)
		assert.Len(t, got.Files, 1)
	})
	require.NoError(t, err)
	assert.True(t, called)

	require.Contains(t, res.Files, path)
	assert.Equal(t, 1, res.Summary.Files)
	assert.Equal(t, model.LineCount{Total: 4, Empty: 1, Comment: 1}, res.Files[path].Sloc)
	assert.Equal(t, model.LineCount{}, res.Files[path].Analyze.Loc)
	assert.Empty(t, res.Files[path].Analyze.Encoding)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	var cbErr error
	res, err := Run(Options{}, func(err error, got *model.Result) {
		cbErr = err
		assert.Nil(t, got)
	})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNoTarget)
	assert.ErrorIs(t, cbErr, ErrNoTarget)
	assert.Equal(t, "No target specified!", err.Error())

	missing := filepath.Join(t.TempDir(), "nope")
	res, err = Run(Options{Target: missing}, nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNotExist)
	assert.Contains(t, err.Error(), "No such file or directory!")
}

func TestRunFilters(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n")
	writeFile(t, dir, "b.js", "var b;\n")
	writeFile(t, dir, "vendor/c.go", "package c\n")
	writeFile(t, dir, "node_modules/d.js", "var d;\n")
	writeFile(t, dir, "sub/deep/e.go", "package e\n")

	res, err := Run(Options{Target: dir, Types: []string{".go"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Summary.Files)

	res, err = Run(Options{Target: dir, Exclude: []string{"vendor"}}, nil)
	require.NoError(t, err)
	assert.Contains(t, res.Files, filepath.Join(dir, "node_modules", "d.js"), "custom exclude replaces defaults")
	assert.NotContains(t, res.Files, filepath.Join(dir, "vendor", "c.go"))

	res, err = Run(Options{Target: dir, MaxDepth: 1}, nil)
	require.NoError(t, err)
	assert.NotContains(t, res.Files, filepath.Join(dir, "sub", "deep", "e.go"))
	assert.Contains(t, res.Files, filepath.Join(dir, "vendor", "c.go"))
}

func TestRunGitignoreAndMaxFileSize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "gen/\n")
	writeFile(t, dir, "gen/out.go", "package gen\n")
	writeFile(t, dir, "small.go", "package small\n")
	writeFile(t, dir, "big.go", "package big\n"+lines(100, "var _ = 1"))

	var logs bytes.Buffer
	res, err := Run(Options{
		Target:           dir,
		Types:            []string{".go"},
		RespectGitignore: true,
		MaxFileSize:      64,
		Logger:           logger.NewConsoleLogger(&logs, "info").WithoutTimestamps(),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "small.go")}, keys(res))
	assert.Contains(t, logs.String(), "[INFO] Checking: "+dir)
	assert.Contains(t, logs.String(), "big.go: skipped (>64 bytes)")
}

func TestRunWithEncoding(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "main.py", "print('hi')\n")

	res, err := Run(Options{Target: path, WithEncoding: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ASCII", res.Files[path].Analyze.Encoding)
}

func TestResultJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "hello\n")

	res, err := Run(Options{Target: path}, nil)
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Contains(t, decoded, "summary")
	entry := decoded[path]
	assert.Equal(t, "notes", entry["basename"])
	assert.Equal(t, ".txt", entry["extname"])
	assert.Equal(t, model.NotSupported, entry["sloc"].(map[string]any)["total"])
	assert.Equal(t, float64(1), decoded["summary"]["files"])
}

func TestResolveIdempotent(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	first, err := Resolve("some/rel/path")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(first))
	assert.True(t, IsAbsolute(first))

	second, err := Resolve(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, err := Resolve("some/rel/path")
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestRunRelativeTarget(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pkg/x.go", "package x\n")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	res, err := Run(Options{Target: "pkg"}, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pkg"), res.Target)
	assert.Equal(t, 1, res.Summary.Files)
}

func keys(res *model.Result) []string {
	var out []string
	for _, rec := range res.Sorted() {
		out = append(out, rec.Path)
	}
	return out
}
