package kv

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// virtualRoot is the arena slot of the parent of all top level elements.
const virtualRoot NodeID = 0

type frame struct {
	indent int
	id     NodeID
}

// builder owns everything transient: ancestor stack and substitution table
// are dropped together with it once document is produced.
type builder struct {
	doc   *Document
	stack []frame
	subs  Substitutions
	log   *zap.Logger
}

// Build reads complete source and builds document from it. Either complete
// document or an error is returned, errors describing source structure are
// *StructuralError.
func Build(ctx context.Context, r io.Reader, log *zap.Logger) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read source: %w", err)
	}
	return BuildString(ctx, string(data), log)
}

// BuildString is Build for source already in memory.
func BuildString(ctx context.Context, src string, log *zap.Logger) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	b := &builder{doc: newDocument(), log: log}
	b.doc.newElement("", "")
	b.stack = append(b.stack, frame{indent: -1, id: virtualRoot})

	num := 0
	for raw := range strings.Lines(src) {
		num++
		if err := b.line(num, raw); err != nil {
			return nil, err
		}
	}
	return b.finish()
}

func (b *builder) top() NodeID {
	return b.stack[len(b.stack)-1].id
}

// closeTo pops every open element indented at least as deep as indent.
func (b *builder) closeTo(indent int) {
	for len(b.stack) > 0 && b.stack[len(b.stack)-1].indent >= indent {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

func (b *builder) line(num int, raw string) error {
	ln, err := Classify(raw)
	if err != nil {
		return &StructuralError{Line: num, Content: ln.Content, Err: err}
	}

	switch ln.Kind {
	case LineIgnored:

	case LineDirective:
		if len(b.stack) <= 1 {
			return &StructuralError{Line: num, Content: ln.Content, Err: ErrRootPropertyNotAllowed}
		}
		if err := ApplyDirective(b.doc, b.top(), ln.Name, ln.Value, &b.subs); err != nil {
			b.log.Warn("Unprocessed style directive", zap.Int("line", num), zap.String("name", ln.Name), zap.String("value", ln.Value), zap.Error(err))
		}

	case LineElement:
		b.closeTo(ln.Indent)
		id := ExpandMacro(b.doc, ln.Name)
		b.doc.appendChild(b.top(), id)
		b.stack = append(b.stack, frame{indent: ln.Indent, id: id})

	case LineProperty:
		if len(b.stack) <= 1 {
			return &StructuralError{Line: num, Content: ln.Content, Err: ErrRootPropertyNotAllowed}
		}
		b.doc.Node(b.top()).AppendAttr(ln.Name, ln.Value)

	case LineText:
		b.closeTo(ln.Indent)
		if ln.Indent == 0 || len(b.stack) <= 1 {
			return &StructuralError{Line: num, Content: ln.Content, Err: ErrTextAtRoot}
		}
		b.doc.appendChild(b.top(), b.doc.newText(ln.Content, false))
	}
	return nil
}

func (b *builder) finish() (*Document, error) {
	children := b.doc.Node(virtualRoot).Children
	if len(children) == 0 {
		return nil, &StructuralError{Err: ErrEmptyDocument}
	}
	if len(children) > 1 {
		b.log.Debug("Only first top level element is kept", zap.Int("discarded", len(children)-1))
	}
	b.doc.root = children[0]
	b.stack = nil
	b.log.Debug("Document built", zap.Int("nodes", b.doc.Len()), zap.Int("substitutions", b.subs.Len()))
	return b.doc, nil
}
