package xmlout

// Namespace is a canonical handle for a namespace URI within one output
// context: for a given context there is never more than one handle per
// URI, so identity comparison is enough to compare namespaces. Handles are
// obtained from Context.Namespace; a handle passed across contexts is
// re-resolved before use.
type Namespace struct {
	ctx       *Context // owning context; nil for the no-namespace handle
	uri       string
	preferred string
}

// noNamespace is the context-free handle for names outside any namespace.
var noNamespace = &Namespace{}

// URI returns the namespace URI, "" for the no-namespace handle.
func (ns *Namespace) URI() string {
	if ns == nil {
		return ""
	}
	return ns.uri
}

// PreferredPrefix returns the prefix the namespace would like to be bound
// to; the context may pick another one if it is taken.
func (ns *Namespace) PreferredPrefix() string {
	if ns == nil {
		return ""
	}
	return ns.preferred
}

func (ns *Namespace) validIn(ctx *Context) bool {
	return ns.ctx == nil || ns.ctx == ctx
}
