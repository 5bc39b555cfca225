package kv

import "kvc/utils/debug"

type treeWriter struct {
	*debug.TreeWriter
}

// String returns readable tree of the document. It exists solely for
// inspection during debugging.
func (d *Document) String() string {
	if d == nil || d.root == InvalidNode {
		return "<empty Document>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.Line(0, "Document nodes=%d", d.Len())
	d.Walk(func(id NodeID, depth int) bool {
		n := d.Node(id)
		switch n.Kind {
		case KindText:
			tw.TextBlock(depth+1, "#text", n.Text)
		case KindElement:
			label := n.Tag
			if IsMacro(n.Source) {
				label += " (" + n.Source + ")"
			}
			pairs := make([][2]string, 0, len(n.Attrs))
			for _, a := range n.Attrs {
				pairs = append(pairs, [2]string{a.Name, a.Value})
			}
			tw.Pairs(depth+1, label, pairs...)
		}
		return true
	})
	return tw.String()
}
