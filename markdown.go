package draftclaim

import "strings"

// LineKind classifies a line of generated report text for document
// conversion.
type LineKind int

// Line kinds.
const (
	LineBlank LineKind = iota
	LineHeading
	LineBullet
	LineNumbered
	LineParagraph
)

// Line is one parsed line of generated report text. Text holds the
// content with the markdown marker stripped; Level is the heading level
// (1 to 3) and is zero for every other kind.
type Line struct {
	Kind  LineKind
	Level int
	Text  string
}

// Span is a fragment of inline text with bold styling resolved.
type Span struct {
	Text string
	Bold bool
}

var bulletMarkers = []string{"- ", "* ", "• "}

// ParseLines splits generated text into classified lines.
func ParseLines(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, ParseLine(l))
	}
	return lines
}

// ParseLine classifies a single line of generated text. Models emit a
// small markdown subset: #, ## and ### headings, dash/asterisk/bullet
// list items, and single-digit "1. " numbered items. Everything else is
// a plain paragraph.
func ParseLine(line string) Line {
	stripped := strings.TrimSpace(line)
	if stripped == "" {
		return Line{Kind: LineBlank}
	}

	for level := 3; level >= 1; level-- {
		marker := strings.Repeat("#", level) + " "
		if strings.HasPrefix(stripped, marker) {
			return Line{Kind: LineHeading, Level: level, Text: strings.TrimSpace(stripped[len(marker):])}
		}
	}

	for _, marker := range bulletMarkers {
		if strings.HasPrefix(stripped, marker) {
			return Line{Kind: LineBullet, Text: strings.TrimSpace(stripped[len(marker):])}
		}
	}

	if len(stripped) >= 3 && stripped[0] >= '0' && stripped[0] <= '9' && stripped[1] == '.' && stripped[2] == ' ' {
		return Line{Kind: LineNumbered, Text: strings.TrimSpace(stripped[3:])}
	}

	return Line{Kind: LineParagraph, Text: stripped}
}

// SplitBold splits text on **..** markers into spans, with bold set on
// the odd-numbered segments. Unbalanced markers leave the trailing
// segment following the same alternation. Empty segments are dropped.
func SplitBold(text string) []Span {
	parts := strings.Split(text, "**")
	spans := make([]Span, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			continue
		}
		spans = append(spans, Span{Text: part, Bold: i%2 == 1})
	}
	return spans
}
