package xmlout

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

// outputtable is the contract shared by every node of the output tree.
// The set of node kinds is closed: simple nodes (text, CData, comments,
// entity references, processing instructions, attributes), elements,
// fragments and their buffered variants.
//
// A node lives in at most one parent's pending queue. It is created when
// content cannot be written through to the sink immediately, and it is
// dropped as soon as it has been fully emitted.
type outputtable interface {
	// doOutput attempts to emit this node now. canClose=false signals that
	// the node is the last pending child being drained and must leave
	// itself in a state that still accepts content (an element keeps its
	// end tag unwritten). It reports true iff the node and everything it
	// owns is fully emitted; false means the node, or something inside it,
	// is still buffered and not yet released.
	doOutput(ctx *Context, canClose bool) (bool, error)

	// forceOutput unconditionally emits this node and everything it owns,
	// ignoring buffering state. Called at most once per node.
	forceOutput(ctx *Context) error

	// blocked reports whether doOutput would currently fail to complete,
	// ie whether the node or the front of its pending chain is an
	// unreleased buffer. It has no side effects.
	blocked() bool

	linkNext(n outputtable)
	next() outputtable
}

// linked is the embeddable base for all output nodes, holding the forward
// link to the following sibling in document order.
type linked struct {
	nextNode outputtable
}

func (l *linked) next() outputtable { return l.nextNode }

// linkNext sets the following-sibling link. The link is set exactly once,
// by the parent's queue append.
func (l *linked) linkNext(n outputtable) {
	if l.nextNode != nil {
		panic("xmlout: output node already has a following sibling")
	}
	l.nextNode = n
}
