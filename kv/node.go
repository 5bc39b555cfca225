package kv

import "strings"

// NodeID addresses node in the Document arena.
type NodeID int

// InvalidNode is never a valid arena index.
const InvalidNode NodeID = -1

type NodeKind int

const (
	KindText NodeKind = iota
	KindElement
)

func (k NodeKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindElement:
		return "element"
	default:
		return "unknown"
	}
}

// Attr is a single element attribute. Attributes keep order of first
// insertion.
type Attr struct {
	Name  string
	Value string
}

// Node is either text leaf or element. Text uses Text and Raw fields, element
// uses the rest. Raw marks text which is a markup literal coming from the
// macro table rather than from source. Source is the name element was opened
// with (macro name or literal tag).
type Node struct {
	Kind     NodeKind
	Text     string
	Raw      bool
	Tag      string
	Source   string
	Attrs    []Attr
	Children []NodeID
}

// Attr returns value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr replaces value of the named attribute or adds it.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// AppendAttr concatenates value to the named attribute, attribute is created
// when absent.
func (n *Node) AppendAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value += value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Document is a finished markup tree. Nodes live in a single arena, parents
// refer to children by index.
type Document struct {
	nodes []Node
	root  NodeID
}

func newDocument() *Document {
	return &Document{root: InvalidNode}
}

// Root returns top level element of the document.
func (d *Document) Root() NodeID {
	return d.root
}

// Node returns node by id. It panics on ids which do not belong to the
// document.
func (d *Document) Node(id NodeID) *Node {
	return &d.nodes[id]
}

// Len returns number of nodes in the arena, including nodes which were built
// but are not reachable from the root.
func (d *Document) Len() int {
	return len(d.nodes)
}

func (d *Document) newText(text string, raw bool) NodeID {
	d.nodes = append(d.nodes, Node{Kind: KindText, Text: text, Raw: raw})
	return NodeID(len(d.nodes) - 1)
}

func (d *Document) newElement(tag, source string) NodeID {
	d.nodes = append(d.nodes, Node{Kind: KindElement, Tag: tag, Source: source})
	return NodeID(len(d.nodes) - 1)
}

func (d *Document) appendChild(parent, child NodeID) {
	p := &d.nodes[parent]
	p.Children = append(p.Children, child)
}

// Walk visits nodes reachable from the root in document order. Returning
// false from fn skips children of the visited node.
func (d *Document) Walk(fn func(id NodeID, depth int) bool) {
	if d.root == InvalidNode {
		return
	}
	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		if !fn(id, depth) {
			return
		}
		for _, c := range d.nodes[id].Children {
			walk(c, depth+1)
		}
	}
	walk(d.root, 0)
}

// Title returns text of the first element opened as !Title, or of the first
// <title> element when there is none. Only direct text children count.
func (d *Document) Title() string {
	var byMacro, byTag NodeID = InvalidNode, InvalidNode
	d.Walk(func(id NodeID, _ int) bool {
		n := &d.nodes[id]
		if n.Kind != KindElement {
			return false
		}
		if byMacro == InvalidNode && n.Source == MacroTitle {
			byMacro = id
		}
		if byTag == InvalidNode && n.Tag == "title" {
			byTag = id
		}
		return byMacro == InvalidNode
	})
	switch {
	case byMacro != InvalidNode:
		return d.directText(byMacro)
	case byTag != InvalidNode:
		return d.directText(byTag)
	}
	return ""
}

func (d *Document) directText(id NodeID) string {
	var parts []string
	for _, c := range d.nodes[id].Children {
		if n := &d.nodes[c]; n.Kind == KindText {
			parts = append(parts, n.Text)
		}
	}
	return strings.Join(parts, " ")
}
