// Package render writes built trees to an output sink, as a styled terminal
// tree or as JSON/YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltree "github.com/charmbracelet/lipgloss/tree"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-rootbrowse/pkg/label"
	"github.com/mattsolo1/grove-rootbrowse/pkg/style"
	"github.com/mattsolo1/grove-rootbrowse/pkg/tree"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// Options controls text rendering.
type Options struct {
	// Links turns link segments into OSC 8 hyperlinks on color terminals.
	Links bool
}

// Write encodes n onto w in the given format.
func Write(w io.Writer, n *tree.Node, f Format, opts Options) error {
	switch f {
	case FormatJSON:
		return JSON(w, n)
	case FormatYAML:
		return YAML(w, n)
	}
	return Text(w, n, opts)
}

// Text draws n as a tree. Colors and hyperlinks follow the capabilities of
// w: a bytes.Buffer or a pipe gets plain text.
func Text(w io.Writer, n *tree.Node, opts Options) error {
	return TextWith(lipgloss.NewRenderer(w), w, n, opts)
}

// TextWith is Text with an explicit renderer, for forcing a color profile.
func TextWith(r *lipgloss.Renderer, w io.Writer, n *tree.Node, opts Options) error {
	p := &painter{sheet: style.NewSheet(r), links: opts.Links && r.ColorProfile() != termenv.Ascii}
	_, err := fmt.Fprintln(w, p.tree(n).String())
	return err
}

type painter struct {
	sheet *style.Sheet
	links bool
}

func (p *painter) tree(n *tree.Node) *ltree.Tree {
	t := ltree.Root(p.label(n.Label))
	if n.Label.GuideStyle != "" {
		g := p.sheet.Get(n.Label.GuideStyle)
		t = t.EnumeratorStyle(g.PaddingRight(1)).Indenter(guideIndenter(g))
	}
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			t.Child(p.label(c.Label))
			continue
		}
		t.Child(p.tree(c))
	}
	return t
}

// guideIndenter draws the vertical continuation lines in the guide style.
func guideIndenter(g lipgloss.Style) ltree.Indenter {
	return func(children ltree.Children, index int) string {
		if children.Length()-1 == index {
			return "    "
		}
		return g.Render("│") + "   "
	}
}

func (p *painter) label(l label.Label) string {
	var sb strings.Builder
	for _, seg := range l.Segments {
		text := seg.Text
		if seg.Style != "" {
			text = p.sheet.Get(seg.Style).Render(text)
		}
		if p.links && seg.Link != "" {
			text = termenv.Hyperlink(seg.Link, text)
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// JSON writes n as indented JSON.
func JSON(w io.Writer, n *tree.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(n)
}

// YAML writes n as YAML.
func YAML(w io.Writer, n *tree.Node) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(n); err != nil {
		return err
	}
	return encoder.Close()
}
