package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cozy/blockedit/internal/store"
	"github.com/cozy/blockedit/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// run executes the root command with a config file in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log:\n  level: debug\n"), 0o644))

	var out bytes.Buffer
	root := NewRootCommand("1.2.3")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", configFile}, args...))
	err := root.Execute()
	return out.String(), err
}

func sample(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "doc.yaml")
	doc := model.MustDocument(
		model.NewHeading("1", 1, "title"),
		model.NewBlock("2", model.TypeText, "some <b>bold</b> text"),
		model.NewTodo("3", "x", false, 0),
	)
	require.NoError(t, store.Save(path, doc))
	return path
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	path := sample(t, dir)

	out, err := run(t, dir, "export", path)
	require.NoError(t, err)
	assert.Equal(t, "# title\n\nsome **bold** text\n\n- [ ] x\n", out)

	out, err = run(t, dir, "export", path, "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, `data-block-id="3"`)

	// writes a file in the format of its extension
	target := filepath.Join(dir, "doc.md")
	_, err = run(t, dir, "export", path, "--out", target)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "# title\n\nsome **bold** text\n\n- [ ] x\n", string(data))

	// rejects unknown formats
	_, err = run(t, dir, "export", path, "--format", "pdf")
	assert.ErrorIs(t, err, store.ErrUnknownFormat)

	// needs a file
	_, err = run(t, dir, "export", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(input, []byte("# Notes\n\n- [x] done\n  - [ ] nested\n"), 0o644))

	out, err := run(t, dir, "import", input)
	require.NoError(t, err)
	assert.Contains(t, out, "3 blocks written to")

	doc, err := store.Load(filepath.Join(dir, "notes.yaml"))
	require.NoError(t, err)
	require.Equal(t, 3, doc.Len())
	assert.Equal(t, model.TypeHeading, doc.Block(0).Type)
	assert.True(t, doc.Block(1).Completed)
	assert.Equal(t, 1, doc.Block(2).Indentation)

	// writes to the given file
	target := filepath.Join(dir, "other.yml")
	_, err = run(t, dir, "import", input, "-o", target)
	require.NoError(t, err)
	assert.FileExists(t, target)

	// only reads markdown
	_, err = run(t, dir, "import", filepath.Join(dir, "notes.yaml"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "blockedit 1.2.3\n", out)
}

func TestInvalidConfig(t *testing.T) {
	root := NewRootCommand("dev")
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "version"})
	root.SetOut(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}

func TestOpen(t *testing.T) {
	a := &app{logger: zap.NewNop()}
	dir := t.TempDir()

	// starts from the sample document
	doc, err := a.open(filepath.Join(dir, "new.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Len())

	doc, err = a.open(sample(t, dir))
	require.NoError(t, err)
	assert.Equal(t, "title", doc.Block(0).Content)

	_, err = a.open(filepath.Join(dir, "doc.html"))
	assert.Error(t, err)
	_, err = a.open(filepath.Join(dir, "doc.txt"))
	assert.ErrorIs(t, err, store.ErrUnknownFormat)
}
