package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-rootbrowse/pkg/label"
	"github.com/mattsolo1/grove-rootbrowse/pkg/source"
	"github.com/mattsolo1/grove-rootbrowse/pkg/source/sourcetest"
	"github.com/mattsolo1/grove-rootbrowse/pkg/tree"
)

func buildFlat(t *testing.T) *tree.Node {
	t.Helper()
	dir := &sourcetest.Directory{
		File: "/data/flat.root",
		Entries: []sourcetest.Entry{
			{Key: "Events;1", Object: &sourcetest.Tree{
				TreeName: "Events",
				N:        100,
				Branches: []sourcetest.Entry{
					{Key: "pt", Object: &sourcetest.Branch{BranchName: "pt", Type: "float"}},
					{Key: "h1", Object: &sourcetest.Histogram{HistName: "h1", ClassName: "TH1F", HistKind: source.KindCount, Bins: []int{10}}},
				},
			}},
		},
	}
	n, err := tree.Build(tree.NewRoot(dir), label.Default(), tree.Options{})
	require.NoError(t, err)
	return n
}

func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		out = append(out, strings.TrimRight(l, " "))
	}
	return out
}

func TestTextPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, buildFlat(t), Options{Links: true}))

	out := buf.String()
	assert.NotContains(t, out, "\x1b", "a buffer is not a terminal")

	got := lines(out)
	require.Len(t, got, 4)
	assert.Equal(t, "📁 flat.root", got[0])
	assert.Contains(t, got[1], "└── 🌴 Events (100)")
	assert.Contains(t, got[2], "├── 📊 h1 TH1F (10)")
	assert.Contains(t, got[3], "└── 🍁 pt float")
}

func TestTextColorProfile(t *testing.T) {
	var buf bytes.Buffer
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(termenv.ANSI256)

	require.NoError(t, TextWith(r, &buf, buildFlat(t), Options{Links: true}))
	out := buf.String()

	assert.Contains(t, out, "8;;file:///data/flat.root", "hyperlink to the file")
	assert.Contains(t, out, "\x1b[1m", "bold names")
}

func buildTwoTrees(t *testing.T) *tree.Node {
	t.Helper()
	dir := &sourcetest.Directory{
		File: "/data/two.root",
		Entries: []sourcetest.Entry{
			{Key: "A;1", Object: &sourcetest.Tree{
				TreeName: "A",
				N:        1,
				Branches: []sourcetest.Entry{{Key: "x", Object: &sourcetest.Branch{BranchName: "x", Type: "int32_t"}}},
			}},
			{Key: "B;1", Object: &sourcetest.Tree{TreeName: "B", N: 2}},
		},
	}
	n, err := tree.Build(tree.NewRoot(dir), label.Default(), tree.Options{})
	require.NoError(t, err)
	return n
}

func TestTextContinuationLines(t *testing.T) {
	var plain bytes.Buffer
	require.NoError(t, Text(&plain, buildTwoTrees(t), Options{}))
	got := lines(plain.String())
	require.Len(t, got, 4)
	assert.Equal(t, "│   └── 🍁 x int32_t", got[2])

	var buf bytes.Buffer
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(termenv.ANSI256)
	require.NoError(t, TextWith(r, &buf, buildTwoTrees(t), Options{}))

	var cont string
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.Contains(l, "int32_t") {
			cont = l
		}
	}
	require.NotEmpty(t, cont)
	assert.True(t, strings.HasPrefix(cont, "\x1b["), "continuation line is styled: %q", cont)
}

func TestTextLinksDisabled(t *testing.T) {
	var buf bytes.Buffer
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(termenv.ANSI256)

	require.NoError(t, TextWith(r, &buf, buildFlat(t), Options{Links: false}))
	assert.NotContains(t, buf.String(), "8;;file://")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, buildFlat(t)))

	var got tree.Node
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "/", got.Path)
	assert.Equal(t, "TFile", got.Class)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "bold bright_green", got.Children[0].Label.GuideStyle)
	assert.Equal(t, "/Events/pt", got.Children[0].Children[1].Path)
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, buildFlat(t)))
	assert.Contains(t, buf.String(), "path: /Events/h1")

	var got tree.Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Events", got.Children[0].Name)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
