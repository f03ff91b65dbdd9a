package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.thinkinpower.net/ccform/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMessages(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCatalog_Defaults(t *testing.T) {
	c := New()
	assert.Equal(t, "Card number is required", c.Messages().Text(form.CCNumMissingTxt))
}

func TestCatalog_Load(t *testing.T) {
	dir := t.TempDir()
	writeMessages(t, filepath.Join(dir, "messages.yaml"), `
ccNumMissingTxt: Numer karty jest wymagany
ccvMissingTxt: Kod CCV jest wymagany
unknownTxt: ignored
`)
	writeMessages(t, filepath.Join(dir, "pl", "messages.yaml"), `
ccvMissingTxt: Podaj CCV
`)

	c := New()
	require.NoError(t, c.Load(dir))

	m := c.Messages()
	assert.Equal(t, "Numer karty jest wymagany", m.Text(form.CCNumMissingTxt))
	assert.Equal(t, "Podaj CCV", m.Text(form.CCVMissingTxt))
	assert.Equal(t, "Card number is too short", m.Text(form.CCNumTooShortTxt))
}

func TestCatalog_LoadNestedOverridesRoot(t *testing.T) {
	dir := t.TempDir()
	writeMessages(t, filepath.Join(dir, "messages.yaml"), "ccvMissingTxt: root\nccNumMissingTxt: root\n")
	writeMessages(t, filepath.Join(dir, "en", "messages.yaml"), "ccvMissingTxt: en\n")
	writeMessages(t, filepath.Join(dir, "de", "nested", "messages.yaml"), "ccvMissingTxt: de nested\n")
	writeMessages(t, filepath.Join(dir, "de", "messages.yaml"), "ccNumMissingTxt: de\n")

	c := New()
	require.NoError(t, c.Load(dir))

	m := c.Messages()
	assert.Equal(t, "de nested", m.Text(form.CCVMissingTxt))
	assert.Equal(t, "de", m.Text(form.CCNumMissingTxt))
}

func TestSortByDepth(t *testing.T) {
	sep := string(filepath.Separator)
	paths := []string{
		"d" + sep + "en" + sep + "messages.yaml",
		"d" + sep + "messages.yaml",
		"d" + sep + "de" + sep + "x" + sep + "messages.yaml",
		"d" + sep + "de" + sep + "messages.yaml",
	}
	sortByDepth(paths)
	assert.Equal(t, []string{
		"d" + sep + "messages.yaml",
		"d" + sep + "de" + sep + "messages.yaml",
		"d" + sep + "en" + sep + "messages.yaml",
		"d" + sep + "de" + sep + "x" + sep + "messages.yaml",
	}, paths)
}

func TestCatalog_LoadKeepsMessagesOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.yaml")
	writeMessages(t, path, "ccNumMissingTxt: first\n")

	c := New()
	require.NoError(t, c.Load(dir))

	writeMessages(t, path, "ccNumMissingTxt: [unterminated\n")
	assert.Error(t, c.Load(dir))
	assert.Equal(t, "first", c.Messages().Text(form.CCNumMissingTxt))

	assert.Error(t, c.Load(filepath.Join(dir, "missing")))
	assert.Equal(t, "first", c.Messages().Text(form.CCNumMissingTxt))
}

func TestCatalog_Watch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.yaml")
	writeMessages(t, path, "ccNumMissingTxt: first\n")

	c := New()
	require.NoError(t, c.Load(dir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx, dir) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)
	writeMessages(t, path, "ccNumMissingTxt: second\n")

	assert.Eventually(t, func() bool {
		return c.Messages().Text(form.CCNumMissingTxt) == "second"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestCatalog_WatchNewDirectory(t *testing.T) {
	dir := t.TempDir()
	c := New()
	require.NoError(t, c.Load(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = c.Watch(ctx, dir) }()
	time.Sleep(100 * time.Millisecond)

	// the directory arrives with its messages file already inside
	staged := filepath.Join(t.TempDir(), "en")
	writeMessages(t, filepath.Join(staged, "messages.yaml"), "ccvMissingTxt: moved in\n")
	require.NoError(t, os.Rename(staged, filepath.Join(dir, "en")))

	assert.Eventually(t, func() bool {
		return c.Messages().Text(form.CCVMissingTxt) == "moved in"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestCatalog_WatchMissingDir(t *testing.T) {
	err := New().Watch(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCatalog_SatisfiesMessageSource(t *testing.T) {
	var source form.MessageSource = New()
	assert.NotNil(t, source)
}
