package kv

import (
	"strings"
	"testing"
)

func TestExpandMacro(t *testing.T) {
	tests := []struct {
		name  string
		tag   string
		style string
		text  string
	}{
		{MacroDocument, "html", "", `<meta charset="utf-8">`},
		{MacroRocyonery, "div", "background-color:#fdd;width:100%;height:60px;line-height:60px;text-align:center;", "Создано с помощью дешаблонизатора от Rocyonery, Inc."},
		{MacroFullwidth, "div", "width: 100%;", ""},
		{MacroTitle, "div", "width: 100%; height: 60px; line-height: 60px; font-size: 20px; text-align: center;", ""},
		{MacroSubtitle, "div", "width: 100%; font-size: 16px; text-align: center;", ""},
		{MacroSmartColumns, TagSmartColumns, "width: 100%;", ""},
		{MacroColumn, "div", "width: calc(100% / \x00 - 6px);display:inline-block;vertical-align:top;margin:3px;", ""},
		{"section", "section", "", ""},
		{"!Unknown", "!Unknown", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDocument()
			id := ExpandMacro(d, tt.name)
			n := d.Node(id)

			if n.Kind != KindElement {
				t.Fatalf("Kind = %v, want element", n.Kind)
			}
			if n.Tag != tt.tag {
				t.Errorf("Tag = %q, want %q", n.Tag, tt.tag)
			}
			if n.Source != tt.name {
				t.Errorf("Source = %q, want %q", n.Source, tt.name)
			}
			style, ok := n.Attr("style")
			if ok != (tt.style != "") || style != tt.style {
				t.Errorf("style = %q (present %v), want %q", style, ok, tt.style)
			}
			if tt.style == "" && len(n.Attrs) != 0 {
				t.Errorf("unexpected attributes %v", n.Attrs)
			}

			switch {
			case tt.text == "" && len(n.Children) != 0:
				t.Errorf("unexpected children %v", n.Children)
			case tt.text != "":
				if len(n.Children) != 1 {
					t.Fatalf("children = %d, want 1", len(n.Children))
				}
				c := d.Node(n.Children[0])
				if c.Kind != KindText || c.Text != tt.text {
					t.Errorf("child = %+v, want text %q", c, tt.text)
				}
				if c.Raw != (tt.name == MacroDocument) {
					t.Errorf("child Raw = %v", c.Raw)
				}
			}
		})
	}
}

func TestExpandMacro_FreshInstances(t *testing.T) {
	d := newDocument()
	first := ExpandMacro(d, MacroTitle)
	second := ExpandMacro(d, MacroTitle)

	if first == second {
		t.Fatal("ExpandMacro() returned the same node twice")
	}
	d.Node(first).AppendAttr("style", "color: red;")

	style, _ := d.Node(second).Attr("style")
	if strings.Contains(style, "red") {
		t.Error("mutation of one expansion leaked into another")
	}
	if m := macros[MacroTitle]; strings.Contains(m.style, "red") {
		t.Error("mutation leaked into macro table")
	}
}

func TestIsMacro(t *testing.T) {
	if !IsMacro(MacroColumn) {
		t.Error("IsMacro(!Column) = false")
	}
	if IsMacro("div") {
		t.Error("IsMacro(div) = true")
	}
}
