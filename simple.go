package xmlout

// Simple nodes are the slow-path representation of content that would
// normally be written through to the sink directly. They exist only while
// something earlier in the document is still buffered.

type simpleKind int8

const (
	textNode simpleKind = iota
	cdataNode
	commentNode
	entityRefNode
	piNode
	attrNode
)

// simpleNode carries one piece of leaf content. target holds the
// processing-instruction target or the attribute name, ns the attribute
// namespace; both are unused for the other kinds.
type simpleNode struct {
	linked
	kind   simpleKind
	value  string
	target string
	ns     *Namespace
}

func (s *simpleNode) write(ctx *Context) error {
	switch s.kind {
	case textNode:
		return ctx.writeCharacters(s.value)
	case cdataNode:
		return ctx.writeCData(s.value)
	case commentNode:
		return ctx.writeComment(s.value)
	case entityRefNode:
		return ctx.writeEntityRef(s.value)
	case piNode:
		return ctx.writeProcessingInstruction(s.target, s.value)
	case attrNode:
		return ctx.writeAttribute(s.ns, s.target, s.value)
	}
	return nil
}

func (s *simpleNode) doOutput(ctx *Context, canClose bool) (bool, error) {
	if err := s.write(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *simpleNode) forceOutput(ctx *Context) error {
	return s.write(ctx)
}

func (s *simpleNode) blocked() bool { return false }
