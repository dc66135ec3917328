// Package style parses style strings such as "bold bright_blue" or
// "italic #ff8800 on black" into lipgloss styles.
package style

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ansiNames maps color names to the 16 standard ANSI colors.
var ansiNames = map[string]int{
	"black":          0,
	"red":            1,
	"green":          2,
	"yellow":         3,
	"blue":           4,
	"magenta":        5,
	"cyan":           6,
	"white":          7,
	"bright_black":   8,
	"grey":           8,
	"gray":           8,
	"bright_red":     9,
	"bright_green":   10,
	"bright_yellow":  11,
	"bright_blue":    12,
	"bright_magenta": 13,
	"bright_cyan":    14,
	"bright_white":   15,
}

var (
	hexColor   = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	indexColor = regexp.MustCompile(`^color\((\d{1,3})\)$`)
)

// Parse converts a style string into a style bound to r. Words are
// attributes (bold, dim, italic, underline, strike, reverse, blink) or colors;
// a color following "on" is the background. The empty string is a plain
// style.
func Parse(r *lipgloss.Renderer, desc string) (lipgloss.Style, error) {
	s := r.NewStyle()
	words := strings.Fields(strings.ToLower(desc))

	for i := 0; i < len(words); i++ {
		w := words[i]
		switch w {
		case "bold", "b":
			s = s.Bold(true)
		case "dim", "d":
			s = s.Faint(true)
		case "italic", "i":
			s = s.Italic(true)
		case "underline", "u":
			s = s.Underline(true)
		case "strike", "s":
			s = s.Strikethrough(true)
		case "reverse", "r":
			s = s.Reverse(true)
		case "blink":
			s = s.Blink(true)
		case "default", "none":
		case "on":
			if i+1 >= len(words) {
				return s, fmt.Errorf("parse style %q: missing color after \"on\"", desc)
			}
			i++
			c, err := Color(words[i])
			if err != nil {
				return s, fmt.Errorf("parse style %q: %w", desc, err)
			}
			s = s.Background(c)
		default:
			c, err := Color(w)
			if err != nil {
				return s, fmt.Errorf("parse style %q: %w", desc, err)
			}
			s = s.Foreground(c)
		}
	}
	return s, nil
}

// Color parses a color name, "#rrggbb", "color(N)" or a bare ANSI index.
func Color(name string) (lipgloss.Color, error) {
	if n, ok := ansiNames[name]; ok {
		return lipgloss.Color(strconv.Itoa(n)), nil
	}
	if hexColor.MatchString(name) {
		return lipgloss.Color(name), nil
	}
	idx := name
	if m := indexColor.FindStringSubmatch(name); m != nil {
		idx = m[1]
	}
	if n, err := strconv.Atoi(idx); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(strconv.Itoa(n)), nil
	}
	return "", fmt.Errorf("unknown color %q", name)
}

// Validate reports whether desc parses.
func Validate(desc string) error {
	_, err := Parse(lipgloss.DefaultRenderer(), desc)
	return err
}

// Sheet caches parsed styles for one renderer. Unparseable descriptions render
// plain.
type Sheet struct {
	r     *lipgloss.Renderer
	cache map[string]lipgloss.Style
}

// NewSheet returns a sheet bound to r.
func NewSheet(r *lipgloss.Renderer) *Sheet {
	return &Sheet{r: r, cache: make(map[string]lipgloss.Style)}
}

// Get returns the style for desc.
func (sh *Sheet) Get(desc string) lipgloss.Style {
	if s, ok := sh.cache[desc]; ok {
		return s
	}
	s, err := Parse(sh.r, desc)
	if err != nil {
		s = sh.r.NewStyle()
	}
	sh.cache[desc] = s
	return s
}

// Renderer returns the renderer the sheet's styles are bound to.
func (sh *Sheet) Renderer() *lipgloss.Renderer {
	return sh.r
}
