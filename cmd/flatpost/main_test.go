package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/flatpost/parser"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func fixNow(t *testing.T, at time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = old })
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "flatpost dev\n", out)
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	older := writeFile(t, dir, "2022-01-01-00-00.md", "Old\n---\nold body")
	newer := writeFile(t, dir, "2024-01-01-00-00.md", "New\ncover.png\n---\n# New body")

	out, _, err := execute(t, "", "parse", older, newer)
	require.NoError(t, err)

	var posts []parser.Post
	require.NoError(t, json.Unmarshal([]byte(out), &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "New", posts[0].Title)
	assert.Equal(t, "cover.png", posts[0].TitlePic)
	assert.Equal(t, "<h1>New body</h1>\n", posts[0].HTML)
	assert.Equal(t, "2024-01-01-00-00", posts[0].Name)
	assert.Equal(t, "Old", posts[1].Title)
}

func TestParseCommandField(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "2022-01-01-00-00.md", "Old\n---\nx")
	b := writeFile(t, dir, "2024-01-01-00-00.md", "New\n---\ny")

	out, _, err := execute(t, "", "parse", "--field", "title", a, b)
	require.NoError(t, err)
	assert.Equal(t, "New\nOld\n", out)

	_, _, err = execute(t, "", "parse", "--field", "tags", a)
	assert.Error(t, err)
}

func TestParseCommandReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "2024-01-01-00-00.md", "Good\n---\nx")
	bad := writeFile(t, dir, "2024-01-02-00-00.md", "no separator")

	out, stderr, err := execute(t, "", "parse", "--field", "title", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 sources failed")
	assert.Equal(t, "Good\n", out)
	assert.Contains(t, stderr, bad)
	assert.Contains(t, stderr, parser.ErrSeparatorNotFound.Error())
}

func TestParseCommandStdin(t *testing.T) {
	out, _, err := execute(t, "Piped\n---\n*body*", "parse", "--field", "html", "-")
	require.NoError(t, err)
	assert.Equal(t, "<p><em>body</em></p>\n\n", out)
}

func TestParseCommandExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "2024-01-01-00-00.post", "T\n---\nx")

	out, _, err := execute(t, "", "parse", "--ext", ".post", "--field", "name", path)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01-00-00\n", out)
}

func TestParseCommandCharset(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "2024-01-01-00-00.md", "Caf\xe9\n---\nx")

	_, _, err := execute(t, "", "parse", path)
	assert.Error(t, err, "not valid utf-8")

	out, _, err := execute(t, "", "parse", "--charset", "windows-1252", "--field", "title", path)
	require.NoError(t, err)
	assert.Equal(t, "Café\n", out)

	_, _, err = execute(t, "", "parse", "--charset", "nope", path)
	assert.Error(t, err)
}

func TestNewCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "posts")
	fixNow(t, time.Date(2024, 3, 9, 14, 7, 33, 0, time.UTC))

	out, _, err := execute(t, "", "new", "--source-dir", dir, "--title", "Hello there", "--pic", "cover.png")
	require.NoError(t, err)

	path := filepath.Join(dir, "2024-03-09-14-07.md")
	assert.Equal(t, path+"\n", out)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Hello there\ncover.png\n---\n"), "got %q", content)

	_, _, err = execute(t, "", "new", "--source-dir", dir, "--title", "Again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestNewCommandValidates(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, "", "new", "--source-dir", dir)
	assert.Error(t, err, "title is required")

	_, _, err = execute(t, "", "new", "--source-dir", dir, "--title", "a --- b")
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCSSCommand(t *testing.T) {
	out, _, err := execute(t, "", "css", "--style", "github")
	require.NoError(t, err)
	assert.Contains(t, out, ".chroma")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	sources := filepath.Join(dir, "content")
	cfgPath := writeFile(t, dir, "flatpost.yaml", "source_dir: "+sources+"\nsource_ext: .post\nsite:\n  name: From file\n")
	fixNow(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	out, _, err := execute(t, "", "--config", cfgPath, "new", "--title", "T")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sources, "2024-01-01-00-00.post")+"\n", out)
}

func TestConfigMissingFile(t *testing.T) {
	_, _, err := execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	assert.Error(t, err)
}

func TestConfigEnvAndFlagPrecedence(t *testing.T) {
	envDir := filepath.Join(t.TempDir(), "env")
	flagDir := filepath.Join(t.TempDir(), "flag")
	t.Setenv("FLATPOST_SOURCE_DIR", envDir)
	fixNow(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	out, _, err := execute(t, "", "new", "--title", "T")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, envDir), "env should override defaults: %q", out)

	out, _, err = execute(t, "", "new", "--source-dir", flagDir, "--title", "T")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, flagDir), "flag should override env: %q", out)
}

func TestConfigFromViper(t *testing.T) {
	v := viper.New()
	require.NoError(t, loadConfig(v))

	cfg, err := configFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "Blog", cfg.Name)
	assert.Equal(t, ".md", cfg.SourceExt)
	assert.Equal(t, 5*time.Minute, cfg.PostCacheTTL)
	assert.False(t, cfg.Watch)

	v.Set("cache_ttl", "soon")
	_, err = configFromViper(v)
	assert.Error(t, err)
}
