// pkg/help/topics_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: in-memory fstest.MapFS, cobra command tree
// PURPOSE: Test topic discovery, lookup and the replacement help command

package help

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicsFS() fstest.MapFS {
	return fstest.MapFS{
		"txml.md":           {Data: []byte("# TXML\n\nDocument format")},
		"hooks.txt":         {Data: []byte("Hook reference")},
		"more/variables.md": {Data: []byte("# Variables")},
		"notes.json":        {Data: []byte("{}")},
	}
}

type upperRenderer struct{}

func (upperRenderer) Render(content, ext string) string {
	if ext != ".md" {
		return content
	}
	return strings.ToUpper(content)
}

func TestLoad(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		m, err := Load(topicsFS(), Options{})
		require.NoError(t, err)

		assert.Equal(t, []string{"hooks", "txml", "variables"}, m.Names())

		topic, ok := m.Get("txml")
		require.True(t, ok)
		assert.Equal(t, "txml.md", topic.Path)
		assert.Equal(t, "# TXML\n\nDocument format", topic.Content)

		_, ok = m.Get("notes")
		assert.False(t, ok)
	})

	t.Run("custom extensions", func(t *testing.T) {
		m, err := Load(topicsFS(), Options{Extensions: []string{".json"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"notes"}, m.Names())
	})

	t.Run("renderer gets the extension", func(t *testing.T) {
		m, err := Load(topicsFS(), Options{Renderer: upperRenderer{}})
		require.NoError(t, err)

		md, _ := m.Get("txml")
		txt, _ := m.Get("hooks")
		assert.Equal(t, "# TXML\n\nDOCUMENT FORMAT", m.Render(md))
		assert.Equal(t, "Hook reference", m.Render(txt))
	})
}

func newRoot(t *testing.T, fsys fstest.MapFS) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "app", Run: func(cmd *cobra.Command, args []string) {}}
	root.AddCommand(&cobra.Command{Use: "build", Short: "Build things", Run: func(cmd *cobra.Command, args []string) {}})

	m, err := Load(fsys, Options{})
	require.NoError(t, err)
	m.Install(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestInstall(t *testing.T) {
	tests := []struct {
		name     string
		fsys     fstest.MapFS
		args     []string
		contains string
	}{
		{"topic", topicsFS(), []string{"help", "hooks"}, "Hook reference"},
		{"topic list", topicsFS(), []string{"help", "topics"}, "  variables\n"},
		{"no topics", fstest.MapFS{}, []string{"help", "topics"}, "No help topics available."},
		{"command help", topicsFS(), []string{"help", "build"}, "Build things"},
		{"root help", topicsFS(), []string{"help"}, "Available Commands"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, out := newRoot(t, tt.fsys)
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())
			assert.Contains(t, out.String(), tt.contains)
		})
	}
}
