package kv

import (
	"strings"
	"testing"
)

func TestNode_Attrs(t *testing.T) {
	var n Node
	n.AppendAttr("style", "a;")
	n.SetAttr("id", "x")
	n.AppendAttr("style", "b;")
	n.SetAttr("id", "y")

	if len(n.Attrs) != 2 {
		t.Fatalf("Attrs = %v, want 2 entries", n.Attrs)
	}
	if n.Attrs[0].Name != "style" || n.Attrs[1].Name != "id" {
		t.Errorf("attribute order = %v, want insertion order", n.Attrs)
	}
	if v, _ := n.Attr("style"); v != "a;b;" {
		t.Errorf("style = %q", v)
	}
	if v, _ := n.Attr("id"); v != "y" {
		t.Errorf("id = %q", v)
	}
	if _, ok := n.Attr("class"); ok {
		t.Error("Attr(class) reported missing attribute as present")
	}
}

func TestDocument_Walk(t *testing.T) {
	doc := build(t, "a:\n  b:\n    c:\n      t\n  d:\n")

	var visited []string
	doc.Walk(func(id NodeID, depth int) bool {
		n := doc.Node(id)
		label := n.Tag
		if n.Kind == KindText {
			label = n.Text
		}
		visited = append(visited, strings.Repeat(".", depth)+label)
		return true
	})
	if got := strings.Join(visited, " "); got != "a .b ..c ...t .d" {
		t.Errorf("Walk order = %q", got)
	}

	visited = visited[:0]
	doc.Walk(func(id NodeID, _ int) bool {
		visited = append(visited, doc.Node(id).Tag)
		return doc.Node(id).Tag != "b"
	})
	if got := strings.Join(visited, " "); got != "a b d" {
		t.Errorf("Walk with skip = %q", got)
	}

	var empty Document
	empty.root = InvalidNode
	empty.Walk(func(NodeID, int) bool {
		t.Error("Walk visited node of empty document")
		return true
	})
}

func TestDocument_Title(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"title macro", "!Document:\n  !Title:\n    Hello\n    World\n", "Hello World"},
		{"title tag", "html:\n  head:\n    title:\n      Page\n", "Page"},
		{"macro preferred", "html:\n  title:\n    Tag\n  !Title:\n    Macro\n", "Macro"},
		{"none", "html:\n  p:\n    x\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := build(t, tt.src).Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocument_String(t *testing.T) {
	doc := build(t, "!Document:\n  !Fullwidth:\n    id: main\n    Hi\n")
	want := `Document nodes=5
  html (!Document)
    #text: "<meta charset=\"utf-8\">"
    div (!Fullwidth) style="width: 100%;" id="main"
      #text: "Hi"
`
	if got := doc.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	var nilDoc *Document
	if got := nilDoc.String(); got != "<empty Document>" {
		t.Errorf("nil String() = %q", got)
	}
}

func TestDocument_StringMacroLabels(t *testing.T) {
	doc := build(t, "body:\n  !Unknown:\n    x\n  !SmartColumns:\n")
	want := `Document nodes=5
  body
    !Unknown
      #text: "x"
    smc (!SmartColumns) style="width: 100%;"
`
	if got := doc.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestNodeKind_String(t *testing.T) {
	if KindText.String() != "text" || KindElement.String() != "element" || NodeKind(5).String() != "unknown" {
		t.Error("unexpected NodeKind names")
	}
}
