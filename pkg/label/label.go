// Package label turns reader objects into styled tree labels.
package label

import "strings"

// Segment is a run of label text sharing one style. Style uses the
// space separated syntax understood by pkg/style ("bold", "italic",
// "bold bright_blue"...). Link, when set, is a URI the text points at.
type Segment struct {
	Text  string `json:"text" yaml:"text"`
	Style string `json:"style,omitempty" yaml:"style,omitempty"`
	Link  string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Label is the styled text of one tree node plus an optional style for the
// guide lines drawn below it.
type Label struct {
	Segments   []Segment `json:"segments" yaml:"segments"`
	GuideStyle string    `json:"guide_style,omitempty" yaml:"guide_style,omitempty"`
}

// Plain returns the label text without styling.
func (l Label) Plain() string {
	var sb strings.Builder
	for _, s := range l.Segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Assemble builds a label from segments.
func Assemble(segments ...Segment) Label {
	return Label{Segments: segments}
}

// Text is an unstyled segment.
func Text(s string) Segment {
	return Segment{Text: s}
}

// Styled is a segment with a style.
func Styled(s, style string) Segment {
	return Segment{Text: s, Style: style}
}
