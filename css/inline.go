// Package css checks inline style attributes produced by style directives.
package css

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Declaration is a single "property: value" pair of an inline style.
type Declaration struct {
	Property string
	Value    string
}

type WarningKind int

const (
	WarnSyntax WarningKind = iota
	WarnEmptyValue
	WarnOverridden
)

func (k WarningKind) String() string {
	switch k {
	case WarnSyntax:
		return "syntax"
	case WarnEmptyValue:
		return "empty value"
	case WarnOverridden:
		return "overridden"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning describes problem found in inline style.
type Warning struct {
	Kind     WarningKind
	Property string
	Message  string
}

func (w Warning) String() string {
	if w.Property == "" {
		return w.Kind.String() + ": " + w.Message
	}
	return w.Kind.String() + ": " + w.Property + ": " + w.Message
}

// Parse splits inline style into declarations. Broken declarations are
// skipped and reported, parsing continues with the next one.
func Parse(style string) ([]Declaration, []Warning) {
	var (
		decls    []Declaration
		warnings []Warning
	)

	p := css.NewParser(parse.NewInputString(style), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if !p.HasParseError() {
				if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
					warnings = append(warnings, Warning{Kind: WarnSyntax, Message: err.Error()})
				}
				return decls, warnings
			}
			warnings = append(warnings, Warning{Kind: WarnSyntax, Message: syntaxMessage(p.Err())})

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			d := Declaration{Property: string(data), Value: tokensString(p.Values())}
			if d.Value == "" {
				warnings = append(warnings, Warning{Kind: WarnEmptyValue, Property: d.Property, Message: "declaration has no value"})
				continue
			}
			decls = append(decls, d)

		case css.AtRuleGrammar, css.BeginAtRuleGrammar:
			warnings = append(warnings, Warning{Kind: WarnSyntax, Property: string(data), Message: "at-rule is not allowed in inline style"})
		}
	}
}

// Lint returns everything suspicious about inline style, including
// properties set more than once where only the last value is effective.
func Lint(style string) []Warning {
	decls, warnings := Parse(style)

	last := make(map[string]int, len(decls))
	for i, d := range decls {
		if prev, ok := last[d.Property]; ok {
			warnings = append(warnings, Warning{
				Kind:     WarnOverridden,
				Property: d.Property,
				Message:  fmt.Sprintf("value %q replaced by %q", decls[prev].Value, d.Value),
			})
		}
		last[d.Property] = i
	}
	return warnings
}

func tokensString(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}

// syntaxMessage strips position context parse errors carry, single line
// style does not need it.
func syntaxMessage(err error) string {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return perr.Message
	}
	return err.Error()
}
