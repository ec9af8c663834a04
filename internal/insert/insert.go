// Package insert computes how formatting directives change an editor
// buffer and where the cursor lands afterwards. Offsets are rune indices.
package insert

import (
	"regexp"
	"strings"
)

type Kind int

const (
	Literal Kind = iota
	Bold
	Italic
	Code
	Link
	Heading
	Bullet
)

var kindNames = map[Kind]string{
	Literal: "literal",
	Bold:    "bold",
	Italic:  "italic",
	Code:    "code",
	Link:    "link",
	Heading: "heading",
	Bullet:  "bullet",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Directive is a formatting action. Level is used by Heading (1-6),
// Snippet by Literal.
type Directive struct {
	Kind    Kind
	Level   int
	Snippet string
}

func WrapBold() Directive   { return Directive{Kind: Bold} }
func WrapItalic() Directive { return Directive{Kind: Italic} }
func WrapCode() Directive   { return Directive{Kind: Code} }
func MakeLink() Directive   { return Directive{Kind: Link} }
func BulletItem() Directive { return Directive{Kind: Bullet} }

func HeadingLevel(n int) Directive {
	return Directive{Kind: Heading, Level: clamp(n, 1, 6)}
}

func Snippet(s string) Directive {
	return Directive{Kind: Literal, Snippet: s}
}

// Result is the new buffer with a cursor. Start equals End for every
// directive that changes the buffer.
type Result struct {
	Buffer string
	Start  int
	End    int
}

const (
	placeholderBold    = "text"
	placeholderItalic  = "text"
	placeholderCode    = "code"
	placeholderHeading = "Heading"
	placeholderBullet  = "List item"
)

var headingPrefix = regexp.MustCompile(`^#{1,6}\s`)

// Insert applies d to the half-open selection [start, end) of buffer.
// Out of range offsets are clamped and an inverted range is reordered.
func Insert(buffer string, start, end int, d Directive) Result {
	text := []rune(buffer)
	start = clamp(start, 0, len(text))
	end = clamp(end, 0, len(text))
	if start > end {
		start, end = end, start
	}
	selected := string(text[start:end])

	var replacement string
	var offset int

	switch d.Kind {
	case Bold:
		replacement, offset = wrap("**", selected, placeholderBold)
	case Italic:
		replacement, offset = wrap("*", selected, placeholderItalic)
	case Code:
		replacement, offset = wrap("`", selected, placeholderCode)
	case Link:
		if selected != "" {
			replacement = "[" + selected + "](url)"
			offset = runeLen(selected) + 3
		} else {
			replacement = "[text](url)"
			offset = 1
		}
	case Heading:
		return heading(text, start, end, selected, d.Level)
	case Bullet:
		before := text[:start]
		if len(before) > 0 && before[len(before)-1] != '\n' {
			replacement = "\n"
		}
		replacement += "- " + orDefault(selected, placeholderBullet)
		offset = runeLen(replacement)
	default:
		replacement = d.Snippet + selected
		offset = runeLen(replacement)
	}

	cursor := start + offset
	return Result{
		Buffer: splice(text, start, end, replacement),
		Start:  cursor,
		End:    cursor,
	}
}

// wrap surrounds a selection with marker, or inserts the marker pair
// around a placeholder with the cursor just inside the opening marker.
func wrap(marker, selected, placeholder string) (string, int) {
	if selected != "" {
		replacement := marker + selected + marker
		return replacement, runeLen(replacement)
	}
	return marker + placeholder + marker, runeLen(marker)
}

// heading rewrites the whole line holding start. A line that already
// carries a heading marker is left alone.
func heading(text []rune, start, end int, selected string, level int) Result {
	lineStart := start
	for lineStart > 0 && text[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := start
	for lineEnd < len(text) && text[lineEnd] != '\n' {
		lineEnd++
	}

	line := string(text[lineStart:lineEnd])
	if headingPrefix.MatchString(line) {
		return Result{Buffer: string(text), Start: start, End: end}
	}

	content := selected
	if content == "" {
		content = orDefault(strings.TrimSpace(line), placeholderHeading)
	}
	replacement := strings.Repeat("#", clamp(level, 1, 6)) + " " + content

	cursor := lineStart + runeLen(replacement)
	return Result{
		Buffer: splice(text, lineStart, lineEnd, replacement),
		Start:  cursor,
		End:    cursor,
	}
}

func splice(text []rune, start, end int, replacement string) string {
	var b strings.Builder
	b.WriteString(string(text[:start]))
	b.WriteString(replacement)
	b.WriteString(string(text[end:]))
	return b.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func runeLen(s string) int {
	return len([]rune(s))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
