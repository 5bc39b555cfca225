package kv

import (
	"errors"
	"testing"
)

func TestSubstitutions_Apply(t *testing.T) {
	tests := []struct {
		name  string
		set   [][2]string
		value string
		want  string
	}{
		{
			name:  "empty table",
			value: "red",
			want:  "red",
		},
		{
			name:  "every occurrence",
			set:   [][2]string{{"$c", "#fdd"}},
			value: "$c, $c",
			want:  "#fdd, #fdd",
		},
		{
			name:  "longer key wins at the same position",
			set:   [][2]string{{"a", "1"}, {"ab", "2"}},
			value: "ab a",
			want:  "2 1",
		},
		{
			name:  "replacement is not rescanned",
			set:   [][2]string{{"x", "y"}, {"y", "z"}},
			value: "xy",
			want:  "yz",
		},
		{
			name:  "last write wins",
			set:   [][2]string{{"w", "10px"}, {"w", "20px"}},
			value: "w",
			want:  "20px",
		},
		{
			name:  "empty replacement",
			set:   [][2]string{{"gone", ""}},
			value: "a gone b",
			want:  "a  b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Substitutions
			for _, kv := range tt.set {
				s.Set(kv[0], kv[1])
			}
			if got := s.Apply(tt.value); got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestSubstitutions_ReplacerRefresh(t *testing.T) {
	var s Substitutions
	s.Set("a", "1")
	if got := s.Apply("ab"); got != "1b" {
		t.Fatalf("Apply() = %q", got)
	}
	s.Set("b", "2")
	if got := s.Apply("ab"); got != "12" {
		t.Errorf("Apply() after Set = %q, want %q", got, "12")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if v, ok := s.lookup("b"); !ok || v != "2" {
		t.Errorf("Get(b) = %q, %v", v, ok)
	}
}

func TestApplyDirective(t *testing.T) {
	tests := []struct {
		name      string
		directive string
		value     string
		want      string
	}{
		{"width", DirectiveWidth, "50%", "width: 50%;"},
		{"height", DirectiveHeight, "10px", "height: 10px;"},
		{"line height", DirectiveLHeight, "1.5", "line-height: 1.5;"},
		{"text size", DirectiveTextSize, "12pt", "font-size: 12pt;"},
		{"text type", DirectiveTextType, "serif", "font-family: serif;"},
		{"back fill", DirectiveBackFill, "#fff", "background-color: #fff;"},
		{"back grad", DirectiveBackGrad, "red, blue", "background: linear-gradient(red, blue);"},
		{"centred ignores value", DirectiveCentred, "whatever", "text-align: center;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDocument()
			id := d.newElement("div", "div")
			var subs Substitutions

			if err := ApplyDirective(d, id, tt.directive, tt.value, &subs); err != nil {
				t.Fatalf("ApplyDirective() error = %v", err)
			}
			got, ok := d.Node(id).Attr("style")
			if !ok || got != tt.want {
				t.Errorf("style = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyDirective_Accumulates(t *testing.T) {
	d := newDocument()
	id := ExpandMacro(d, MacroFullwidth)
	var subs Substitutions

	for _, dir := range [][2]string{{DirectiveHeight, "5px"}, {DirectiveCentred, ""}} {
		if err := ApplyDirective(d, id, dir[0], dir[1], &subs); err != nil {
			t.Fatalf("ApplyDirective(%s) error = %v", dir[0], err)
		}
	}
	want := "width: 100%;height: 5px;text-align: center;"
	if got, _ := d.Node(id).Attr("style"); got != want {
		t.Errorf("style = %q, want %q", got, want)
	}
}

func TestApplyDirective_Set(t *testing.T) {
	d := newDocument()
	id := d.newElement("div", "div")
	var subs Substitutions

	if err := ApplyDirective(d, id, DirectiveSet, "main #123 !important", &subs); err != nil {
		t.Fatalf("ApplyDirective(Set) error = %v", err)
	}
	if v, ok := subs.lookup("main"); !ok || v != "#123 !important" {
		t.Errorf("Get(main) = %q, %v", v, ok)
	}
	if len(d.Node(id).Attrs) != 0 {
		t.Errorf("Set touched the element: %v", d.Node(id).Attrs)
	}

	// value is substituted before Set is executed
	if err := ApplyDirective(d, id, DirectiveSet, "alias main", &subs); err != nil {
		t.Fatalf("ApplyDirective(Set) error = %v", err)
	}
	if v, _ := subs.lookup("alias"); v != "#123 !important" {
		t.Errorf("Get(alias) = %q", v)
	}

	if err := ApplyDirective(d, id, DirectiveSet, "lonely", &subs); err != nil {
		t.Fatalf("ApplyDirective(Set) error = %v", err)
	}
	if v, ok := subs.lookup("lonely"); !ok || v != "" {
		t.Errorf("Get(lonely) = %q, %v, want empty replacement", v, ok)
	}
}

func TestApplyDirective_Diagnostics(t *testing.T) {
	d := newDocument()
	id := d.newElement("div", "div")
	var subs Substitutions

	err := ApplyDirective(d, id, "Blink", "yes", &subs)
	if !errors.Is(err, ErrUnknownDirective) {
		t.Errorf("unknown directive error = %v", err)
	}
	err = ApplyDirective(d, id, DirectiveSet, "", &subs)
	if !errors.Is(err, ErrEmptySubstitutionKey) {
		t.Errorf("empty key error = %v", err)
	}
	if len(d.Node(id).Attrs) != 0 {
		t.Errorf("diagnostics must not mutate element: %v", d.Node(id).Attrs)
	}
	if subs.Len() != 0 {
		t.Errorf("diagnostics must not mutate table, Len() = %d", subs.Len())
	}
}
