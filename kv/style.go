package kv

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Directive names.
const (
	DirectiveSet      = "Set"
	DirectiveWidth    = "Width"
	DirectiveHeight   = "Height"
	DirectiveLHeight  = "LHeight"
	DirectiveTextSize = "Text_size"
	DirectiveTextType = "Text_type"
	DirectiveBackFill = "Back_fill"
	DirectiveBackGrad = "Back_grad"
	DirectiveCentred  = "Centred"
)

var styleProperties = map[string]string{
	DirectiveWidth:    "width",
	DirectiveHeight:   "height",
	DirectiveLHeight:  "line-height",
	DirectiveTextSize: "font-size",
	DirectiveTextType: "font-family",
	DirectiveBackFill: "background-color",
}

// Substitutions is document scoped table of literal replacements registered
// with @Set. Last write for a key wins.
//
// When several keys could match, replacement is done in a single left to
// right pass: at every position the longest matching key is used, keys of the
// same length are tried in order of first registration. Replaced text is not
// scanned again.
type Substitutions struct {
	keys     []string
	values   map[string]string
	replacer *strings.Replacer
}

func (s *Substitutions) Set(key, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
	s.replacer = nil
}

func (s *Substitutions) lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Substitutions) Len() int {
	return len(s.keys)
}

// Apply replaces every registered key found in value.
func (s *Substitutions) Apply(value string) string {
	if len(s.keys) == 0 {
		return value
	}
	if s.replacer == nil {
		keys := slices.Clone(s.keys)
		slices.SortStableFunc(keys, func(a, b string) int {
			return cmp.Compare(len(b), len(a))
		})
		oldnew := make([]string, 0, 2*len(keys))
		for _, k := range keys {
			oldnew = append(oldnew, k, s.values[k])
		}
		s.replacer = strings.NewReplacer(oldnew...)
	}
	return s.replacer.Replace(value)
}

// ApplyDirective substitutes raw value and executes directive against target
// element. @Set changes the substitution table only, style directives append
// "property: value;" to the element style attribute. Unknown directives and
// @Set with empty key leave everything untouched and return a diagnostic
// error which is not fatal.
func ApplyDirective(d *Document, target NodeID, name, raw string, subs *Substitutions) error {
	value := subs.Apply(raw)

	var fragment string
	switch name {
	case DirectiveSet:
		key, rest, _ := strings.Cut(value, " ")
		if key == "" {
			return fmt.Errorf("%w: %q", ErrEmptySubstitutionKey, value)
		}
		subs.Set(key, rest)
		return nil
	case DirectiveWidth, DirectiveHeight, DirectiveLHeight, DirectiveTextSize, DirectiveTextType, DirectiveBackFill:
		fragment = styleProperties[name] + ": " + value + ";"
	case DirectiveBackGrad:
		fragment = "background: linear-gradient(" + value + ");"
	case DirectiveCentred:
		fragment = "text-align: center;"
	default:
		return fmt.Errorf("%w: %s:%s", ErrUnknownDirective, name, value)
	}

	d.Node(target).AppendAttr("style", fragment)
	return nil
}
