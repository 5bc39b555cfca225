package kv

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Line
	}{
		{
			name: "empty",
			raw:  "",
			want: Line{Kind: LineIgnored},
		},
		{
			name: "whitespace only",
			raw:  "   \t  ",
			want: Line{Kind: LineIgnored},
		},
		{
			name: "comment keeps indent",
			raw:  "    # note: not a property:",
			want: Line{Kind: LineIgnored, Indent: 4, Content: "# note: not a property:"},
		},
		{
			name: "directive",
			raw:  "  @Width:  50% ",
			want: Line{Kind: LineDirective, Indent: 2, Name: "Width", Value: "50%", Content: "@Width:  50%"},
		},
		{
			name: "directive ending with colon is still directive",
			raw:  "@Centred:",
			want: Line{Kind: LineDirective, Name: "Centred", Content: "@Centred:"},
		},
		{
			name: "directive value with colons",
			raw:  "@Back_fill: url(a:b)",
			want: Line{Kind: LineDirective, Name: "Back_fill", Value: "url(a:b)", Content: "@Back_fill: url(a:b)"},
		},
		{
			name: "element",
			raw:  "\t!Title:\r\n",
			want: Line{Kind: LineElement, Indent: 1, Name: "!Title", Content: "!Title:"},
		},
		{
			name: "element with inner colon",
			raw:  "a:b:",
			want: Line{Kind: LineElement, Name: "a:b", Content: "a:b:"},
		},
		{
			name: "property split at first colon",
			raw:  "    href : http://example.com ",
			want: Line{Kind: LineProperty, Indent: 4, Name: "href", Value: "http://example.com", Content: "href : http://example.com"},
		},
		{
			name: "text",
			raw:  "      Hello world  ",
			want: Line{Kind: LineText, Indent: 6, Content: "Hello world"},
		},
		{
			name: "indent counted in characters",
			raw:  "　　Привет",
			want: Line{Kind: LineText, Indent: 2, Content: "Привет"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.raw)
			if err != nil {
				t.Fatalf("Classify(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassify_MissingColon(t *testing.T) {
	ln, err := Classify("   @Centred")
	if !errors.Is(err, ErrMissingColonInDirective) {
		t.Fatalf("Classify() error = %v, want ErrMissingColonInDirective", err)
	}
	if ln.Content != "@Centred" || ln.Indent != 3 {
		t.Errorf("Classify() = %+v, expected content and indent to be filled", ln)
	}
}

func TestLineKind_String(t *testing.T) {
	kinds := map[LineKind]string{
		LineIgnored:   "ignored",
		LineDirective: "directive",
		LineElement:   "element",
		LineProperty:  "property",
		LineText:      "text",
		LineKind(99):  "unknown",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("LineKind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
