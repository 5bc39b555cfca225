// Package debug has helpers producing human readable dumps of in-memory
// structures. Output is meant for troubleshooting reports, not for parsing.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const defaultIndent = "  "

type TreeWriter struct {
	w      *strings.Builder
	indent string
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: defaultIndent,
	}
}

// WithIndent changes string used for a single nesting level.
func (tw *TreeWriter) WithIndent(indent string) *TreeWriter {
	tw.indent = indent
	return tw
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes labeled value, control characters in value are escaped.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Pairs writes label followed by name=value pairs on the same line. Values
// are always quoted so empty ones remain visible.
func (tw TreeWriter) Pairs(depth int, label string, pairs ...[2]string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	for _, p := range pairs {
		tw.w.WriteByte(' ')
		tw.w.WriteString(p[0])
		tw.w.WriteByte('=')
		tw.w.WriteString(strconv.Quote(p[1]))
	}
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
