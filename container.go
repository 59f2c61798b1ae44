package xmlout

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "strings"

// Container is the public face of output nodes that can hold content:
// documents, fragments, elements and their buffered variants. Every add
// operation either writes through to the sink immediately or queues the
// content behind a not-yet-released buffer, preserving document order
// either way.
type Container interface {
	AddCharacters(text string) error
	AddCData(text string) error
	AddComment(text string) error
	AddEntityRef(name string) error
	AddProcessingInstruction(target, data string) error
	AddElement(ns *Namespace, localName string) (*Element, error)
	AddBuffered(b Bufferable) error
	AddAndReleaseBuffered(b Bufferable) error
	CreateBufferedFragment() *BufferedFragment
	CreateBufferedElement(ns *Namespace, localName string) *BufferedElement
	CanOutputNewChild() (bool, error)
	Context() *Context
	Path() string
}

// Bufferable is the contract of output nodes that start out buffered:
// they are linked into the tree immediately but hold their content in
// memory until released. Implemented by BufferedFragment and
// BufferedElement; the method set is deliberately closed.
type Bufferable interface {
	Container
	// Release marks the buffered content as final. Releasing cascades: it
	// drains this node and everything queued behind it, as far up and
	// across the document as possible, in a single synchronous pass.
	Release() error

	linkParent(parent parentNode, blocked bool) error
	bufferedNode() outputtable
}

// parentNode is the internal dispatch interface for containers. The
// container base delegates the type-specific decisions (may a new child be
// written through? may a release notification travel past?) to the
// concrete node it is embedded in.
type parentNode interface {
	outputtable

	// canOutputNewChild is the central gate for add operations: it drains
	// this container's pending queue as far as possible and reports true
	// iff the queue is now empty, meaning a new child may be written
	// straight to the sink.
	canOutputNewChild() (bool, error)

	// passRelease reports whether a release notification for child may
	// travel past this container: child sits at the front of the pending
	// queue and this container is itself able to make progress.
	passRelease(child outputtable) bool

	// drainRelease re-drains the pending queue at the top of a release
	// cascade. Only root containers drain; everything below is reached
	// through doOutput.
	drainRelease() error

	// childAdded is invoked after a child was written or queued; elements
	// use it to end their attribute window.
	childAdded()

	parentContainer() parentNode
	appendPath(sb *strings.Builder)
}

// container is the embedded engine of all child-bearing nodes. It owns the
// queue of children that have not been fully emitted yet, as a forward
// linked chain in document order. Ownership of a child ends the moment it
// has been completely written: the queue front advances and no reference
// to the child remains.
type container struct {
	linked
	ctx        *Context
	self       parentNode // concrete node this container is embedded in
	parent     parentNode // nil for roots and unattached buffered nodes
	firstChild outputtable
	lastChild  outputtable
}

func (c *container) init(ctx *Context, self parentNode) {
	c.ctx = ctx
	c.self = self
}

// Context returns the output context this node is bound to.
func (c *container) Context() *Context { return c.ctx }

// Namespace returns the canonical handle for a namespace URI within this
// node's context. Handles are identity-comparable per context.
func (c *container) Namespace(uri string) *Namespace {
	return c.ctx.Namespace(uri)
}

// SetIndentation configures heuristic indentation on the underlying
// context; see Context.SetIndentation.
func (c *container) SetIndentation(indent string, startOffset, step int) {
	c.ctx.SetIndentation(indent, startOffset, step)
}

// CanOutputNewChild drains this container's pending queue as far as
// possible and reports whether a new child could now be written through to
// the sink without being queued.
func (c *container) CanOutputNewChild() (bool, error) {
	return c.self.canOutputNewChild()
}

// --- Adding simple content ---------------------------------------------

// AddCharacters adds text content.
func (c *container) AddCharacters(text string) error {
	ok, err := c.self.canOutputNewChild()
	if err != nil {
		return err
	}
	c.self.childAdded()
	if ok {
		return c.ctx.writeCharacters(text)
	}
	c.linkNewChild(c.ctx.createCharacters(text))
	return nil
}

// AddCData adds a CDATA section.
func (c *container) AddCData(text string) error {
	ok, err := c.self.canOutputNewChild()
	if err != nil {
		return err
	}
	c.self.childAdded()
	if ok {
		return c.ctx.writeCData(text)
	}
	c.linkNewChild(c.ctx.createCData(text))
	return nil
}

// AddComment adds a comment.
func (c *container) AddComment(text string) error {
	ok, err := c.self.canOutputNewChild()
	if err != nil {
		return err
	}
	c.self.childAdded()
	if ok {
		return c.ctx.writeComment(text)
	}
	c.linkNewChild(c.ctx.createComment(text))
	return nil
}

// AddEntityRef adds an entity reference.
func (c *container) AddEntityRef(name string) error {
	ok, err := c.self.canOutputNewChild()
	if err != nil {
		return err
	}
	c.self.childAdded()
	if ok {
		return c.ctx.writeEntityRef(name)
	}
	c.linkNewChild(c.ctx.createEntityRef(name))
	return nil
}

// AddProcessingInstruction adds a processing instruction.
func (c *container) AddProcessingInstruction(target, data string) error {
	ok, err := c.self.canOutputNewChild()
	if err != nil {
		return err
	}
	c.self.childAdded()
	if ok {
		return c.ctx.writeProcessingInstruction(target, data)
	}
	c.linkNewChild(c.ctx.createProcessingInstruction(target, data))
	return nil
}

// --- Adding elements and buffered nodes --------------------------------

// AddElement adds a child element and returns it, so the caller can
// populate attributes and content. A nil namespace puts the element
// outside of any namespace; a handle from a foreign context is re-resolved
// within this node's context.
func (c *container) AddElement(ns *Namespace, localName string) (*Element, error) {
	ns = c.ctx.local(ns)
	ok, err := c.self.canOutputNewChild()
	if err != nil {
		return nil, err
	}
	c.self.childAdded()
	e := newElement(c.ctx, ns, localName)
	c.linkNewChild(e)
	return e, e.linkParent(c.self, !ok)
}

// AddBuffered attaches a buffered node, created earlier by one of the
// Create* factories, as the next child. The node keeps buffering until
// released.
func (c *container) AddBuffered(b Bufferable) error {
	if b.Context() != c.ctx {
		panic("xmlout: buffered node belongs to a different output context")
	}
	ok, err := c.self.canOutputNewChild()
	if err != nil {
		return err
	}
	c.self.childAdded()
	c.linkNewChild(b.bufferedNode())
	return b.linkParent(c.self, !ok)
}

// AddAndReleaseBuffered attaches a buffered node and releases it right
// away.
func (c *container) AddAndReleaseBuffered(b Bufferable) error {
	if err := c.AddBuffered(b); err != nil {
		return err
	}
	return b.Release()
}

// CreateBufferedFragment creates a detached buffered fragment bound to
// this node's context. It has no parent until passed to AddBuffered.
func (c *container) CreateBufferedFragment() *BufferedFragment {
	return newBufferedFragment(c.ctx)
}

// CreateBufferedElement creates a detached buffered element bound to this
// node's context.
func (c *container) CreateBufferedElement(ns *Namespace, localName string) *BufferedElement {
	return newBufferedElement(c.ctx, c.ctx.local(ns), localName)
}

// --- Queue management and flushing --------------------------------------

// linkNewChild appends a node to the pending-child queue.
func (c *container) linkNewChild(n outputtable) {
	if c.lastChild == nil {
		c.firstChild = n
		c.lastChild = n
	} else {
		c.lastChild.linkNext(n)
		c.lastChild = n
	}
}

// closeAndOutputChildren tries to close and output all pending children,
// front to back. It stops at the first child that is still blocked and
// reports false; the queue then still starts at that child. On full
// success the queue is empty.
func (c *container) closeAndOutputChildren() (bool, error) {
	for c.firstChild != nil {
		ok, err := c.firstChild.doOutput(c.ctx, true)
		if err != nil {
			return false, err
		}
		if !ok {
			// buffered child, or a buffered descendant inside it
			return false, nil
		}
		c.firstChild = c.firstChild.next()
	}
	c.lastChild = nil
	return true, nil
}

// closeAllButLastChild outputs pending children like
// closeAndOutputChildren, except that the tail child may not be closed: it
// is flushed with canClose=false and stays queued if it remains open. Used
// by release cascades, where the trailing child may still receive content.
func (c *container) closeAllButLastChild() (bool, error) {
	child := c.firstChild
	for child != nil {
		next := child.next()
		notLast := next != nil
		ok, err := child.doOutput(c.ctx, notLast)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		child = next
		c.firstChild = child
	}
	c.lastChild = nil
	return true, nil
}

// forceChildOutput unconditionally emits all pending children. The queue
// is cleared up front so that a failing child can never be re-emitted.
func (c *container) forceChildOutput() error {
	child := c.firstChild
	c.firstChild = nil
	c.lastChild = nil
	for ; child != nil; child = child.next() {
		if err := child.forceOutput(c.ctx); err != nil {
			return err
		}
	}
	return nil
}

// blocked reports whether the front of the pending chain is an unreleased
// buffer. Concrete node types refine this with their own state.
func (c *container) blocked() bool {
	return c.firstChild != nil && c.firstChild.blocked()
}

// --- Defaults for parentNode --------------------------------------------

func (c *container) parentContainer() parentNode { return c.parent }

func (c *container) childAdded() {}

func (c *container) drainRelease() error { return nil }

// --- Release cascade ------------------------------------------------------

// bubbleRelease propagates a release notification upward: container c just
// learned that its child ch is no longer a blocking reason. The walk is
// iterative so that deeply nested documents do not grow the call stack;
// the actual output happens in one re-drain at the topmost live container,
// which reaches back down through doOutput.
func bubbleRelease(c parentNode, ch outputtable) error {
	for c != nil {
		if !c.passRelease(ch) {
			// ch is queued behind something still blocked, or c itself
			// cannot make progress yet; a later release will get here again
			return nil
		}
		p := c.parentContainer()
		if p == nil {
			tracer().Debugf("release cascade reached root, draining")
			return c.drainRelease()
		}
		ch, c = c, p
	}
	return nil
}

// --- Diagnostics ----------------------------------------------------------

// Path renders an XPath-like description of this node's position, by
// walking parent links up to the root. For error messages only.
func (c *container) Path() string {
	var sb strings.Builder
	c.self.appendPath(&sb)
	return sb.String()
}

func (c *container) appendParentPath(sb *strings.Builder) {
	if c.parent != nil {
		c.parent.appendPath(sb)
	}
}
