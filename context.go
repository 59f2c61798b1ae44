package xmlout

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/xmlout/writer"
)

// Context ties one output tree to its sink. It owns the namespace table,
// the prefix bindings currently in scope and the indentation
// configuration, and it provides the write-now primitives used on the fast
// path as well as the node factories used on the buffered path.
//
// A context is created by NewFragment or NewDocument and shared by every
// node of that tree; nodes from different contexts must not be mixed.
type Context struct {
	writer    writer.StreamWriter
	nsByURI   map[string]*Namespace
	scopes    []nsBinding
	prefixSeq int
	depth     int
	ind       indenter
}

// nsBinding is a prefix binding in scope, tagged with the element depth
// that declared it.
type nsBinding struct {
	depth  int
	prefix string
	uri    string
}

func newContext(sw writer.StreamWriter) *Context {
	return &Context{
		writer:  sw,
		nsByURI: make(map[string]*Namespace),
	}
}

// --- Namespaces -----------------------------------------------------------

// Namespace returns the canonical handle for a URI within this context,
// creating it on first use. The empty URI yields the context-free
// no-namespace handle.
func (ctx *Context) Namespace(uri string) *Namespace {
	if uri == "" {
		return noNamespace
	}
	if ns, ok := ctx.nsByURI[uri]; ok {
		return ns
	}
	ns := &Namespace{ctx: ctx, uri: uri}
	ctx.nsByURI[uri] = ns
	return ns
}

// NamespaceWithPrefix returns the canonical handle for a URI and records a
// preferred prefix for it. The preference is kept only if none was
// recorded before.
func (ctx *Context) NamespaceWithPrefix(uri, prefix string) *Namespace {
	ns := ctx.Namespace(uri)
	if ns != noNamespace && ns.preferred == "" {
		ns.preferred = prefix
	}
	return ns
}

// local re-resolves a namespace handle for use within this context. Nil
// and empty handles map to the no-namespace handle; handles owned by a
// foreign context are looked up by URI, carrying over the preferred
// prefix.
func (ctx *Context) local(ns *Namespace) *Namespace {
	if ns == nil || ns.uri == "" {
		return noNamespace
	}
	if ns.validIn(ctx) {
		return ns
	}
	out := ctx.Namespace(ns.uri)
	if out.preferred == "" {
		out.preferred = ns.preferred
	}
	return out
}

// bind returns the prefix the URI is bound to in the current scope,
// binding it first if necessary. fresh is true if the binding is new and a
// namespace declaration has to be written.
func (ctx *Context) bind(ns *Namespace) (prefix string, fresh bool) {
	for i := len(ctx.scopes) - 1; i >= 0; i-- {
		if ctx.scopes[i].uri == ns.uri {
			return ctx.scopes[i].prefix, false
		}
	}
	prefix = ns.preferred
	if prefix == "" || ctx.prefixTaken(prefix) {
		ctx.prefixSeq++
		prefix = fmt.Sprintf("ns%d", ctx.prefixSeq)
	}
	ctx.scopes = append(ctx.scopes, nsBinding{depth: ctx.depth, prefix: prefix, uri: ns.uri})
	return prefix, true
}

func (ctx *Context) prefixTaken(prefix string) bool {
	for i := range ctx.scopes {
		if ctx.scopes[i].prefix == prefix {
			return true
		}
	}
	return false
}

// --- Indentation ------------------------------------------------------------

// indenter implements heuristic indentation: a prefix of the indent string
// is written before start tags (and before end tags of elements with pure
// element content), growing by step per nesting level. Purely cosmetic;
// it never changes ordering or buffering.
type indenter struct {
	indent string
	offset int
	step   int
	active bool
	levels []levelInfo
}

type levelInfo struct {
	hadElement bool
	hadText    bool
}

func (ind *indenter) prefix() string {
	n := ind.offset
	if n > len(ind.indent) {
		n = len(ind.indent)
	}
	if n <= 0 {
		return ""
	}
	return ind.indent[:n]
}

// SetIndentation enables or disables heuristic indentation. indent is the
// maximal indentation string, usually a line feed followed by spaces or
// tabs; an empty string disables indentation. startOffset is the number of
// leading characters written for the first level, step the number of
// characters added per nesting level.
//
//	ctx.SetIndentation("\n        ", 1, 2) // lf plus two spaces per level
//	ctx.SetIndentation("", 0, 0)           // off
func (ctx *Context) SetIndentation(indent string, startOffset, step int) {
	ctx.ind.indent = indent
	ctx.ind.offset = startOffset
	ctx.ind.step = step
	ctx.ind.active = indent != ""
}

func (ctx *Context) noteText() {
	if n := len(ctx.ind.levels); n > 0 {
		ctx.ind.levels[n-1].hadText = true
	}
}

// indentLine writes the current indentation prefix, if indentation is on.
func (ctx *Context) indentLine() error {
	if !ctx.ind.active {
		return nil
	}
	if p := ctx.ind.prefix(); p != "" {
		return ctx.writer.Raw(p)
	}
	return nil
}

// --- Write-now primitives ----------------------------------------------------

// The write-now primitives emit content directly to the sink. They are
// used on the fast path (nothing buffered upstream) and by queued nodes
// when they are drained.

func (ctx *Context) writeCharacters(text string) error {
	ctx.noteText()
	return ctx.writer.Characters(text)
}

func (ctx *Context) writeCData(text string) error {
	ctx.noteText()
	return ctx.writer.CData(text)
}

func (ctx *Context) writeComment(text string) error {
	if n := len(ctx.ind.levels); n > 0 {
		ctx.ind.levels[n-1].hadElement = true
	}
	if err := ctx.indentLine(); err != nil {
		return err
	}
	return ctx.writer.Comment(text)
}

func (ctx *Context) writeEntityRef(name string) error {
	ctx.noteText()
	return ctx.writer.EntityRef(name)
}

func (ctx *Context) writeProcessingInstruction(target, data string) error {
	if n := len(ctx.ind.levels); n > 0 {
		ctx.ind.levels[n-1].hadElement = true
	}
	if err := ctx.indentLine(); err != nil {
		return err
	}
	return ctx.writer.ProcessingInstruction(target, data)
}

func (ctx *Context) writeStartElement(ns *Namespace, local string) error {
	if err := ctx.indentLine(); err != nil {
		return err
	}
	if ctx.ind.active {
		ctx.ind.offset += ctx.ind.step
	}
	if n := len(ctx.ind.levels); n > 0 {
		ctx.ind.levels[n-1].hadElement = true
	}
	ctx.ind.levels = append(ctx.ind.levels, levelInfo{})
	ctx.depth++
	var prefix string
	var fresh bool
	if ns != nil && ns.uri != "" {
		prefix, fresh = ctx.bind(ns)
	}
	if err := ctx.writer.StartElement(prefix, local); err != nil {
		return err
	}
	if fresh {
		return ctx.writer.NamespaceDecl(prefix, ns.uri)
	}
	return nil
}

func (ctx *Context) writeAttribute(ns *Namespace, local, value string) error {
	if ns == nil || ns.uri == "" {
		return ctx.writer.Attribute("", local, value)
	}
	prefix, fresh := ctx.bind(ns)
	if fresh {
		if err := ctx.writer.NamespaceDecl(prefix, ns.uri); err != nil {
			return err
		}
	}
	return ctx.writer.Attribute(prefix, local, value)
}

func (ctx *Context) writeEndElement() error {
	ctx.depth--
	// drop prefix bindings declared by the element being closed
	for len(ctx.scopes) > 0 && ctx.scopes[len(ctx.scopes)-1].depth > ctx.depth {
		ctx.scopes = ctx.scopes[:len(ctx.scopes)-1]
	}
	var lvl levelInfo
	if n := len(ctx.ind.levels); n > 0 {
		lvl = ctx.ind.levels[n-1]
		ctx.ind.levels = ctx.ind.levels[:n-1]
	}
	if ctx.ind.active {
		ctx.ind.offset -= ctx.ind.step
		if lvl.hadElement && !lvl.hadText {
			if err := ctx.indentLine(); err != nil {
				return err
			}
		}
	}
	return ctx.writer.EndElement()
}

func (ctx *Context) flush() error {
	return ctx.writer.Flush()
}

// --- Node factories -----------------------------------------------------------

// The create primitives build detached nodes for the buffered path.

func (ctx *Context) createCharacters(text string) outputtable {
	return &simpleNode{kind: textNode, value: text}
}

func (ctx *Context) createCData(text string) outputtable {
	return &simpleNode{kind: cdataNode, value: text}
}

func (ctx *Context) createComment(text string) outputtable {
	return &simpleNode{kind: commentNode, value: text}
}

func (ctx *Context) createEntityRef(name string) outputtable {
	return &simpleNode{kind: entityRefNode, value: name}
}

func (ctx *Context) createProcessingInstruction(target, data string) outputtable {
	return &simpleNode{kind: piNode, target: target, value: data}
}

func (ctx *Context) createAttribute(ns *Namespace, local, value string) outputtable {
	return &simpleNode{kind: attrNode, ns: ns, target: local, value: value}
}
