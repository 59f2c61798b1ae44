package xmlout

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "strings"

// BufferedFragment is a tagless container whose content is held in memory
// until released. It is created detached (CreateBufferedFragment) and
// linked into the tree with AddBuffered; until Release is called it blocks
// itself and every sibling queued after it.
//
// Releasing marks the content as final: no content may be added afterwards.
type BufferedFragment struct {
	container
	released bool
	closed   bool
}

func newBufferedFragment(ctx *Context) *BufferedFragment {
	f := &BufferedFragment{}
	f.init(ctx, f)
	return f
}

// Release marks the fragment's content as final and cascades output: the
// fragment and everything queued behind it is drained as far as the
// document's blocking state allows, in one synchronous pass.
func (f *BufferedFragment) Release() error {
	if f.released {
		panic("xmlout: buffered fragment released twice")
	}
	f.released = true
	tracer().Debugf("buffered fragment released (at %s)", f.Path())
	if f.parent != nil {
		return bubbleRelease(f.parent, f)
	}
	return nil
}

func (f *BufferedFragment) linkParent(parent parentNode, blocked bool) error {
	if f.parent != nil {
		panic("xmlout: buffered fragment is already attached, cannot re-set parent")
	}
	f.parent = parent
	// a fragment has no start token, so the blocked flag needs no action
	return nil
}

func (f *BufferedFragment) bufferedNode() outputtable { return f }

func (f *BufferedFragment) canOutputNewChild() (bool, error) {
	if f.closed {
		panic("xmlout: buffered fragment is closed, cannot add content")
	}
	if f.released {
		panic("xmlout: cannot add content to a buffered fragment after release")
	}
	return false, nil // still buffered, everything queues
}

func (f *BufferedFragment) doOutput(ctx *Context, canClose bool) (bool, error) {
	if f.closed {
		return true, nil
	}
	if !f.released {
		return false, nil
	}
	// released content is final, so a full close is always permitted
	ok, err := f.closeAndOutputChildren()
	if err != nil || !ok {
		return false, err
	}
	f.closed = true
	return true, nil
}

func (f *BufferedFragment) forceOutput(ctx *Context) error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.forceChildOutput()
}

func (f *BufferedFragment) blocked() bool {
	if f.closed {
		return false
	}
	if !f.released {
		return true
	}
	return f.firstChild != nil && f.firstChild.blocked()
}

func (f *BufferedFragment) passRelease(child outputtable) bool {
	return child == f.firstChild && f.released && !f.closed
}

func (f *BufferedFragment) appendPath(sb *strings.Builder) {
	f.appendParentPath(sb)
	sb.WriteString("/{fragment}")
}

// BufferedElement is an element whose whole subtree, start tag included,
// is held in memory until released. Unlike a plain element, a released
// buffered element is final: the release cascade may close it, and adding
// content after release panics.
type BufferedElement struct {
	Element
	released bool
}

func newBufferedElement(ctx *Context, ns *Namespace, localName string) *BufferedElement {
	b := &BufferedElement{}
	b.localName = localName
	b.ns = ns
	b.init(ctx, b)
	return b
}

// Release marks the element's subtree as final and cascades output.
func (b *BufferedElement) Release() error {
	if b.released {
		panic("xmlout: buffered element released twice")
	}
	b.released = true
	tracer().Debugf("buffered element released (at %s)", b.Path())
	if b.parent != nil {
		return bubbleRelease(b.parent, b)
	}
	return nil
}

func (b *BufferedElement) linkParent(parent parentNode, blocked bool) error {
	if b.parent != nil {
		panic("xmlout: buffered element is already attached, cannot re-set parent")
	}
	b.parent = parent
	if !blocked && b.released {
		return b.writeStartTag()
	}
	return nil
}

func (b *BufferedElement) bufferedNode() outputtable { return b }

func (b *BufferedElement) canOutputNewChild() (bool, error) {
	if b.state == elemClosed {
		panic("xmlout: buffered element is closed, cannot add content")
	}
	if b.released {
		panic("xmlout: cannot add content to a buffered element after release")
	}
	return false, nil // still buffered, everything queues
}

// AddAttribute queues or writes an attribute like Element.AddAttribute,
// but rejects attributes once the element has been released.
func (b *BufferedElement) AddAttribute(ns *Namespace, localName, value string) error {
	if b.released && b.state == elemNone {
		panic("xmlout: cannot add attribute to a buffered element after release")
	}
	return b.Element.AddAttribute(ns, localName, value)
}

func (b *BufferedElement) doOutput(ctx *Context, canClose bool) (bool, error) {
	if !b.released {
		return false, nil
	}
	// released content is final: closing is permitted regardless of canClose
	return b.Element.doOutput(ctx, true)
}

func (b *BufferedElement) blocked() bool {
	if !b.released {
		return true
	}
	return b.Element.blocked()
}

var (
	_ Bufferable = (*BufferedFragment)(nil)
	_ Bufferable = (*BufferedElement)(nil)
)
