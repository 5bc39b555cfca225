// Package render serializes kv documents.
//
// Rendering is done in two phases. Layout pass finds every smc container and
// the number of its direct children, formatting pass writes markup and
// resolves column placeholders using the count of the nearest enclosing
// container. Placeholders outside of any container are written as is.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"kvc/common"
	"kvc/kv"
)

type options struct {
	format common.OutputFmt
	escape bool
	indent int
}

type Option func(*options)

func WithFormat(format common.OutputFmt) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithEscaping turns on escaping of text and attribute values for html
// output. Markup literals produced by macros are never escaped. XHTML output
// is always escaped.
func WithEscaping(escape bool) Option {
	return func(o *options) {
		o.escape = escape
	}
}

// WithIndent requests pretty printed XHTML output, html output is never
// indented.
func WithIndent(spaces int) Option {
	return func(o *options) {
		o.indent = spaces
	}
}

// Write serializes document to w.
func Write(w io.Writer, doc *kv.Document, opts ...Option) error {
	o := options{format: common.OutputFmtHtml}
	for _, opt := range opts {
		opt(&o)
	}
	if doc == nil || doc.Root() == kv.InvalidNode {
		return fmt.Errorf("nothing to render")
	}

	cols := layout(doc)

	switch o.format {
	case common.OutputFmtHtml:
		return writeHTML(w, doc, cols, o.escape)
	case common.OutputFmtXhtml:
		return writeXHTML(w, doc, cols, o.indent)
	default:
		return fmt.Errorf("unsupported output format %s", o.format)
	}
}

// noColumns means node is not inside of any smc container.
const noColumns = -1

// columns maps smc containers to number of their direct children.
type columns map[kv.NodeID]int

func layout(doc *kv.Document) columns {
	cols := make(columns)
	doc.Walk(func(id kv.NodeID, _ int) bool {
		n := doc.Node(id)
		if n.Kind == kv.KindElement && n.Tag == kv.TagSmartColumns {
			cols[id] = len(n.Children)
		}
		return n.Kind == kv.KindElement
	})
	return cols
}

// inner returns column count in effect for children of id.
func (c columns) inner(id kv.NodeID, outer int) int {
	if n, ok := c[id]; ok {
		return n
	}
	return outer
}

func tagName(n *kv.Node) string {
	if n.Tag == kv.TagSmartColumns {
		return "div"
	}
	return n.Tag
}

func resolve(s string, count int) string {
	if count == noColumns || !strings.Contains(s, kv.ColumnPlaceholder) {
		return s
	}
	return strings.ReplaceAll(s, kv.ColumnPlaceholder, strconv.Itoa(count))
}
