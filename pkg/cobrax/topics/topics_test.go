package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/dry-run.txt":      {Data: []byte("Information about dry-run mode")},
		"help/long-brackets.md": {Data: []byte("# Long brackets\n\nLevels")},
		"help/nested/layout.md": {Data: []byte("# Layout")},
		"help/ignore.json":      {Data: []byte("{}")},
		"other/not-a-topic.md":  {Data: []byte("outside")},
	}
}

func TestLoad(t *testing.T) {
	tm := New(Options{})
	require.NoError(t, tm.Load(testFS(), "help"))

	assert.Equal(t, []string{"dry-run", "layout", "long-brackets"}, tm.ListTopics())

	topic, ok := tm.GetTopic("--dry-run")
	require.True(t, ok)
	assert.Equal(t, "Information about dry-run mode", topic.Content)

	_, ok = tm.GetTopic("ignore")
	assert.False(t, ok)
}

func TestLoadCustomExtensions(t *testing.T) {
	tm := New(Options{Extensions: []string{".json"}})
	require.NoError(t, tm.Load(testFS(), "help"))
	assert.Equal(t, []string{"ignore"}, tm.ListTopics())
}

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "app", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "build", Short: "Build things", Run: func(*cobra.Command, []string) {}})
	_, err := Initialize(root, testFS(), "help", Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestHelpShowsTopic(t *testing.T) {
	root, out := newRoot(t)
	root.SetArgs([]string{"help", "long-brackets"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "# Long brackets\n\nLevels", out.String())
}

func TestHelpListsTopics(t *testing.T) {
	root, out := newRoot(t)
	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "  long-brackets\n")
	assert.Contains(t, out.String(), "Use 'app help <topic>'")
}

func TestHelpFallsBackToCommands(t *testing.T) {
	root, out := newRoot(t)
	root.SetArgs([]string{"help", "build"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Build things")
}

func TestPlainAndGlamourRenderers(t *testing.T) {
	assert.Equal(t, "x", (&PlainRenderer{}).Render("x", ".md"))
	assert.Equal(t, "plain text", NewGlamourRenderer().Render("plain text", ".txt"))
	assert.Contains(t, NewGlamourRenderer().Render("# Title", ".md"), "Title")
}
