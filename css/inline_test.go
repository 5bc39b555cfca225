package css_test

import (
	"strings"
	"testing"

	"kvc/css"
)

func TestParse_Declarations(t *testing.T) {
	decls, warnings := css.Parse("width: 100%; height: 60px; line-height: 60px; font-size: 20px; text-align: center;")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	want := []css.Declaration{
		{Property: "width", Value: "100%"},
		{Property: "height", Value: "60px"},
		{Property: "line-height", Value: "60px"},
		{Property: "font-size", Value: "20px"},
		{Property: "text-align", Value: "center"},
	}
	if len(decls) != len(want) {
		t.Fatalf("expected %d declarations, got %d: %v", len(want), len(decls), decls)
	}
	for i := range want {
		if decls[i] != want[i] {
			t.Errorf("declaration %d = %+v, want %+v", i, decls[i], want[i])
		}
	}
}

func TestParse_FunctionValues(t *testing.T) {
	decls, warnings := css.Parse("background: linear-gradient(to right, #fff, #000);width: calc(100% / 3 - 6px);display:inline-block;")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(decls) != 3 {
		t.Fatalf("expected 3 declarations, got %v", decls)
	}
	if !strings.HasPrefix(decls[0].Value, "linear-gradient(") {
		t.Errorf("background value = %q", decls[0].Value)
	}
	if !strings.HasPrefix(decls[1].Value, "calc(") || !strings.HasSuffix(decls[1].Value, ")") {
		t.Errorf("width value = %q", decls[1].Value)
	}
	if decls[2].Property != "display" || decls[2].Value != "inline-block" {
		t.Errorf("display = %+v", decls[2])
	}
}

func TestParse_EmptyValue(t *testing.T) {
	decls, warnings := css.Parse("width: ;height: 10px;")
	if len(decls) != 1 || decls[0].Property != "height" {
		t.Errorf("expected only height declaration, got %v", decls)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	if warnings[0].Kind != css.WarnEmptyValue || warnings[0].Property != "width" {
		t.Errorf("unexpected warning %+v", warnings[0])
	}
}

func TestParse_SyntaxErrorRecovers(t *testing.T) {
	decls, warnings := css.Parse("width 100%;height: 10px;")
	if len(warnings) != 1 || warnings[0].Kind != css.WarnSyntax {
		t.Fatalf("expected single syntax warning, got %v", warnings)
	}
	if strings.Contains(warnings[0].Message, "\n") {
		t.Errorf("message should be single line: %q", warnings[0].Message)
	}
	if len(decls) != 1 || decls[0].Property != "height" {
		t.Errorf("parsing should continue after error, got %v", decls)
	}
}

func TestParse_Empty(t *testing.T) {
	decls, warnings := css.Parse("")
	if len(decls) != 0 || len(warnings) != 0 {
		t.Errorf("expected nothing, got %v %v", decls, warnings)
	}
}

func TestLint_Overridden(t *testing.T) {
	warnings := css.Lint("width: 100%;width: 50%;color: red;")
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	w := warnings[0]
	if w.Kind != css.WarnOverridden || w.Property != "width" {
		t.Errorf("unexpected warning %+v", w)
	}
	if !strings.Contains(w.Message, `"100%"`) || !strings.Contains(w.Message, `"50%"`) {
		t.Errorf("message should name both values: %q", w.Message)
	}
}

func TestLint_Clean(t *testing.T) {
	if warnings := css.Lint("width: 100%; font-size: 16px; text-align: center;"); len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestWarning_String(t *testing.T) {
	tests := []struct {
		w    css.Warning
		want string
	}{
		{css.Warning{Kind: css.WarnSyntax, Message: "boom"}, "syntax: boom"},
		{css.Warning{Kind: css.WarnEmptyValue, Property: "width", Message: "declaration has no value"}, "empty value: width: declaration has no value"},
		{css.Warning{Kind: css.WarningKind(42), Message: "x"}, "WarningKind(42): x"},
	}
	for _, tt := range tests {
		if got := tt.w.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
