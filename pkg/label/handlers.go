package label

import (
	"path"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/mattsolo1/grove-rootbrowse/pkg/source"
)

// Unnamed is shown for objects that carry no name.
const Unnamed = "<unnamed>"

// Icons are the glyphs prefixed to each kind of label.
type Icons struct {
	Unknown        string `mapstructure:"unknown"`
	Directory      string `mapstructure:"directory"`
	Tree           string `mapstructure:"tree"`
	JaggedBranch   string `mapstructure:"jagged_branch"`
	Branch         string `mapstructure:"branch"`
	CountHistogram string `mapstructure:"count_histogram"`
	Histogram      string `mapstructure:"histogram"`
}

// DefaultIcons returns the built-in icon set.
func DefaultIcons() Icons {
	return Icons{
		Unknown:        "❓",
		Directory:      "📁",
		Tree:           "🌴",
		JaggedBranch:   "🍃",
		Branch:         "🍁",
		CountHistogram: "📊",
		Histogram:      "📈",
	}
}

// Styles are the style strings used by the built-in handlers.
type Styles struct {
	Name           string `mapstructure:"name"`
	Class          string `mapstructure:"class"`
	DirectoryGuide string `mapstructure:"directory_guide"`
	TreeGuide      string `mapstructure:"tree_guide"`
}

// DefaultStyles returns the built-in styles.
func DefaultStyles() Styles {
	return Styles{
		Name:           "bold",
		Class:          "italic",
		DirectoryGuide: "bold bright_blue",
		TreeGuide:      "bold bright_green",
	}
}

type labeler struct {
	icons  Icons
	styles Styles
}

// New returns a registry with handlers for directories, trees, branches and
// histograms, and a generic fallback.
func New(icons Icons, styles Styles) *Registry {
	l := &labeler{icons: icons, styles: styles}
	r := NewRegistry(l.unknown)
	Register(r, l.directory)
	Register(r, l.tree)
	Register(r, l.branch)
	Register(r, l.histogram)
	return r
}

// Default is New with the built-in icons and styles.
func Default() *Registry {
	return New(DefaultIcons(), DefaultStyles())
}

func (l *labeler) icon(s string) Segment {
	return Text(s + " ")
}

func (l *labeler) unknown(obj source.Object) Label {
	name := Unnamed
	if _, ok := obj.(source.Named); ok && !isNil(obj) {
		name = Escape(NameOf(obj))
	}
	return Assemble(
		l.icon(l.icons.Unknown),
		Styled(name+" ", l.styles.Name),
		Styled(ClassName(obj), l.styles.Class),
	)
}

func (l *labeler) directory(d source.Directory) Label {
	file := d.FilePath()
	seg := Segment{}
	if sub := strings.Trim(d.SubPath(), "/"); sub != "" {
		seg.Text = Escape(path.Base(sub))
		seg.Link = "file://" + file + ":/" + sub
	} else {
		seg.Text = Escape(filepath.Base(file))
		seg.Link = "file://" + file
	}
	return Label{
		Segments:   []Segment{l.icon(l.icons.Directory), seg},
		GuideStyle: l.styles.DirectoryGuide,
	}
}

func (l *labeler) tree(t source.Tree) Label {
	lbl := Assemble(
		l.icon(l.icons.Tree),
		Styled(Escape(t.Name())+" ", l.styles.Name),
		Text("("+FormatCount(t.Entries())+")"),
	)
	lbl.GuideStyle = l.styles.TreeGuide
	return lbl
}

func (l *labeler) branch(b source.Branch) Label {
	icon := l.icons.Branch
	if b.Jagged() {
		icon = l.icons.JaggedBranch
	}
	return Assemble(
		l.icon(icon),
		Styled(Escape(b.Name())+" ", l.styles.Name),
		Styled(b.TypeName(), l.styles.Class),
	)
}

func (l *labeler) histogram(h source.Histogram) Label {
	icon := l.icons.Histogram
	if h.Kind() == source.KindCount {
		icon = l.icons.CountHistogram
	}
	return Assemble(
		l.icon(icon),
		Styled(Escape(h.Name())+" ", l.styles.Name),
		Styled(h.Class()+" ", l.styles.Class),
		Text("("+Sizes(h.Axes())+")"),
	)
}

// NameOf returns the object's name, or "" when it has none.
func NameOf(obj source.Object) string {
	if n, ok := obj.(source.Named); ok && !isNil(obj) {
		return n.Name()
	}
	return ""
}

// ClassName returns obj.Class(), the Go type name when that is empty, or
// "<nil>" for a nil object.
func ClassName(obj source.Object) string {
	if isNil(obj) {
		return "<nil>"
	}
	if c := obj.Class(); c != "" {
		return c
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// FormatCount formats n like %g with six significant digits: 1000 stays
// "1000", 1234567 becomes "1.23457e+06".
func FormatCount(n int64) string {
	return strconv.FormatFloat(float64(n), 'g', 6, 64)
}

// Sizes joins per-axis bin counts, "10 × 20".
func Sizes(axes []int) string {
	parts := make([]string, len(axes))
	for i, n := range axes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " × ")
}

// Escape makes a name read from a file safe to write to a terminal: escape
// sequences and control characters are removed.
func Escape(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
