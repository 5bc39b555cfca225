package render

import (
	"bufio"
	"io"

	"golang.org/x/net/html"

	"kvc/kv"
)

type htmlWriter struct {
	w      *bufio.Writer
	doc    *kv.Document
	cols   columns
	escape bool
}

func writeHTML(w io.Writer, doc *kv.Document, cols columns, escape bool) error {
	hw := &htmlWriter{w: bufio.NewWriter(w), doc: doc, cols: cols, escape: escape}
	hw.node(doc.Root(), noColumns)
	// bufio.Writer keeps the first error, everything after it is dropped
	return hw.w.Flush()
}

func (hw *htmlWriter) text(s string, raw bool) {
	if hw.escape && !raw {
		s = html.EscapeString(s)
	}
	hw.w.WriteString(s)
}

// node writes element with its subtree. count is column count in effect for
// the element itself, smc container attributes are resolved by its own
// enclosing container.
func (hw *htmlWriter) node(id kv.NodeID, count int) {
	n := hw.doc.Node(id)
	if n.Kind == kv.KindText {
		hw.text(resolve(n.Text, count), n.Raw)
		return
	}

	tag := tagName(n)
	hw.w.WriteByte('<')
	hw.w.WriteString(tag)
	for _, a := range n.Attrs {
		hw.w.WriteByte(' ')
		hw.w.WriteString(a.Name)
		hw.w.WriteString(`="`)
		hw.text(resolve(a.Value, count), false)
		hw.w.WriteByte('"')
	}
	hw.w.WriteByte('>')

	inner := hw.cols.inner(id, count)
	for _, c := range n.Children {
		hw.node(c, inner)
	}

	hw.w.WriteString("</")
	hw.w.WriteString(tag)
	hw.w.WriteByte('>')
}
