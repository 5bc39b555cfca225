// Package kv turns indentation structured KV source into a markup tree.
//
// Source is processed line by line. Every line is classified (see Classify),
// element lines are expanded through the fixed macro table (see ExpandMacro),
// style directives are applied to the innermost open element using document
// scoped substitutions (see ApplyDirective) and the resulting tree is kept in
// an arena addressed by NodeID (see Document). Serialization is done elsewhere.
package kv
