package kv

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type LineKind int

const (
	LineIgnored LineKind = iota
	LineDirective
	LineElement
	LineProperty
	LineText
)

func (k LineKind) String() string {
	switch k {
	case LineIgnored:
		return "ignored"
	case LineDirective:
		return "directive"
	case LineElement:
		return "element"
	case LineProperty:
		return "property"
	case LineText:
		return "text"
	default:
		return "unknown"
	}
}

// Line is a classified source line. Name and Value are set for directives and
// properties, Name alone for elements, Content always holds trimmed line.
type Line struct {
	Kind    LineKind
	Indent  int
	Name    string
	Value   string
	Content string
}

// Classify strips the line, measures its indentation in characters and
// determines what the line is. Checks are done in order: blank or comment,
// directive (@name:value), element (ends with ':'), property (name:value),
// text. A directive without ':' is the only malformed line.
func Classify(raw string) (Line, error) {
	rtrim := strings.TrimRightFunc(raw, unicode.IsSpace)
	content := strings.TrimLeftFunc(rtrim, unicode.IsSpace)

	ln := Line{
		Indent:  utf8.RuneCountInString(rtrim) - utf8.RuneCountInString(content),
		Content: content,
	}

	switch {
	case len(content) == 0 || content[0] == '#':
		ln.Kind = LineIgnored

	case content[0] == '@':
		name, value, found := strings.Cut(content[1:], ":")
		if !found {
			return ln, ErrMissingColonInDirective
		}
		ln.Kind, ln.Name, ln.Value = LineDirective, name, strings.TrimSpace(value)

	case strings.HasSuffix(content, ":"):
		ln.Kind, ln.Name = LineElement, content[:len(content)-1]

	case strings.Contains(content, ":"):
		name, value, _ := strings.Cut(content, ":")
		ln.Kind, ln.Name, ln.Value = LineProperty, strings.TrimSpace(name), strings.TrimSpace(value)

	default:
		ln.Kind = LineText
	}
	return ln, nil
}
