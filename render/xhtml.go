package render

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"kvc/kv"
)

const xhtmlNamespace = "http://www.w3.org/1999/xhtml"

// fragmentContext is used to parse markup literals, most of them are valid
// anywhere inside of body.
var fragmentContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

func writeXHTML(w io.Writer, doc *kv.Document, cols columns, indent int) error {
	out := etree.NewDocument()
	out.WriteSettings.CanonicalEndTags = true
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	xw := &xhtmlWriter{doc: doc, cols: cols}
	if err := xw.node(&out.Element, doc.Root(), noColumns); err != nil {
		return err
	}

	if root := out.Root(); root != nil && root.Tag == "html" && root.SelectAttr("xmlns") == nil {
		root.CreateAttr("xmlns", xhtmlNamespace)
	}
	if indent > 0 {
		out.Indent(indent)
	}
	_, err := out.WriteTo(w)
	return err
}

type xhtmlWriter struct {
	doc  *kv.Document
	cols columns
}

// node refuses names and characters XML cannot carry instead of producing
// output no parser would accept.
func (xw *xhtmlWriter) node(parent *etree.Element, id kv.NodeID, count int) error {
	n := xw.doc.Node(id)
	if n.Kind == kv.KindText {
		text := resolve(n.Text, count)
		if err := checkXMLText(text); err != nil {
			return err
		}
		if n.Raw {
			appendMarkup(parent, text)
			return nil
		}
		parent.CreateText(text)
		return nil
	}

	tag := tagName(n)
	if !isXMLName(tag) {
		return fmt.Errorf("element name %q cannot be written as xhtml", tag)
	}
	el := parent.CreateElement(tag)
	for _, a := range n.Attrs {
		if !isXMLName(a.Name) {
			return fmt.Errorf("attribute name %q of element %q cannot be written as xhtml", a.Name, tag)
		}
		value := resolve(a.Value, count)
		if err := checkXMLText(value); err != nil {
			return fmt.Errorf("attribute %q of element %q: %w", a.Name, tag, err)
		}
		el.CreateAttr(a.Name, value)
	}
	inner := xw.cols.inner(id, count)
	for _, c := range n.Children {
		if err := xw.node(el, c, inner); err != nil {
			return err
		}
	}
	return nil
}

// isXMLName reports whether name is an XML name without namespace prefix.
func isXMLName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i == 0:
			return false
		case r == '-' || r == '.' || r == '\u00B7' || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc):
		default:
			return false
		}
	}
	return true
}

// checkXMLText rejects characters outside of XML Char production. Column
// placeholder left unresolved outside of smart columns is one of them.
func checkXMLText(s string) error {
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0xD7FF, r >= 0xE000 && r <= 0xFFFD, r >= 0x10000 && r <= unicode.MaxRune:
		case string(r) == kv.ColumnPlaceholder:
			return fmt.Errorf("column placeholder outside of %s cannot be written as xhtml", kv.MacroSmartColumns)
		default:
			return fmt.Errorf("character %U cannot be written as xhtml", r)
		}
	}
	return nil
}

// appendMarkup converts markup literal into elements so it remains well
// formed, when literal cannot be parsed it is kept as text.
func appendMarkup(parent *etree.Element, markup string) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), fragmentContext)
	if err != nil {
		parent.CreateText(markup)
		return
	}
	for _, n := range nodes {
		appendHTMLNode(parent, n)
	}
}

func appendHTMLNode(parent *etree.Element, n *html.Node) {
	switch n.Type {
	case html.ElementNode:
		el := parent.CreateElement(n.Data)
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + a.Key
			}
			el.CreateAttr(key, a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			appendHTMLNode(el, c)
		}
	case html.TextNode:
		parent.CreateText(n.Data)
	case html.CommentNode:
		parent.CreateComment(n.Data)
	}
}
