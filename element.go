package xmlout

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "strings"

// Element output states. An element is created in elemNone; its start tag
// is written as soon as nothing upstream blocks it (often right inside
// AddElement), opening the attribute window. The first child, written or
// queued, ends that window. The end tag is written when the parent drains
// the element with permission to close.
const (
	elemNone     int8 = iota // start tag not written yet
	elemAttrs                // start tag written, attributes still accepted
	elemChildren             // content has begun
	elemClosed               // end tag written
)

// Element is an output node for an XML element. Elements are containers:
// they accept content through the usual add operations, and they stay in
// their parent's pending queue until the end tag has been written, which
// happens implicitly when a following sibling is added or the document is
// closed.
type Element struct {
	container
	localName string
	ns        *Namespace
	state     int8
}

func newElement(ctx *Context, ns *Namespace, localName string) *Element {
	e := &Element{localName: localName, ns: ns}
	e.init(ctx, e)
	return e
}

// LocalName returns the element's local name.
func (e *Element) LocalName() string { return e.localName }

// NamespaceURI returns the URI of the element's namespace, or "" for an
// element outside of any namespace.
func (e *Element) NamespaceURI() string { return e.ns.URI() }

// AddAttribute adds an attribute to the element. While the element is
// blocked (start tag not written yet) the attribute is queued and written
// right after the start tag. Adding attributes after content panics.
func (e *Element) AddAttribute(ns *Namespace, localName, value string) error {
	ns = e.ctx.local(ns)
	switch e.state {
	case elemClosed:
		panic("xmlout: cannot add attribute to a closed element (at " + e.Path() + ")")
	case elemChildren:
		panic("xmlout: cannot add attribute after element content (at " + e.Path() + ")")
	case elemNone:
		e.linkNewChild(e.ctx.createAttribute(ns, localName, value))
		return nil
	}
	return e.ctx.writeAttribute(ns, localName, value)
}

func (e *Element) writeStartTag() error {
	e.state = elemAttrs
	return e.ctx.writeStartElement(e.ns, e.localName)
}

func (e *Element) writeEndTag() error {
	e.state = elemClosed
	return e.ctx.writeEndElement()
}

// linkParent attaches the element to its parent; when nothing upstream is
// blocked the start tag goes out immediately.
func (e *Element) linkParent(parent parentNode, blocked bool) error {
	if e.parent != nil {
		panic("xmlout: element is already attached, cannot re-set parent")
	}
	e.parent = parent
	if !blocked {
		return e.writeStartTag()
	}
	return nil
}

func (e *Element) canOutputNewChild() (bool, error) {
	switch e.state {
	case elemClosed:
		panic("xmlout: element is closed, cannot add content (at " + e.Path() + ")")
	case elemNone:
		return false, nil // start tag still pending, everything queues
	}
	return e.closeAndOutputChildren()
}

func (e *Element) childAdded() {
	if e.state == elemAttrs {
		e.state = elemChildren
	}
}

func (e *Element) doOutput(ctx *Context, canClose bool) (bool, error) {
	switch e.state {
	case elemClosed:
		return true, nil
	case elemNone:
		if e.firstChild != nil && e.firstChild.blocked() {
			// don't start an element that cannot make progress inside
			return false, nil
		}
		if err := e.writeStartTag(); err != nil {
			return false, err
		}
	}
	if canClose {
		ok, err := e.closeAndOutputChildren()
		if err != nil || !ok {
			return false, err
		}
		if err := e.writeEndTag(); err != nil {
			return false, err
		}
		return true, nil
	}
	// may not close: flush what we can, stay pending
	_, err := e.closeAllButLastChild()
	return false, err
}

func (e *Element) forceOutput(ctx *Context) error {
	if e.state == elemClosed {
		return nil
	}
	if e.state == elemNone {
		if err := e.writeStartTag(); err != nil {
			return err
		}
	}
	if err := e.forceChildOutput(); err != nil {
		return err
	}
	return e.writeEndTag()
}

func (e *Element) blocked() bool {
	return e.state != elemClosed && e.firstChild != nil && e.firstChild.blocked()
}

func (e *Element) passRelease(child outputtable) bool {
	return child == e.firstChild && e.state != elemClosed
}

func (e *Element) appendPath(sb *strings.Builder) {
	e.appendParentPath(sb)
	sb.WriteByte('/')
	sb.WriteString(e.localName)
}
