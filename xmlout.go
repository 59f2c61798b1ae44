/*
Package xmlout is a streaming XML serializer with a tree-building API.

Clients build a document top-down through containers (documents, fragments,
elements), adding content in document order. Output is written to an
append-only sink the moment it is known to be final: in the common case an
add operation translates directly into a write, without any node object
surviving the call.

A subset of nodes may instead be constructed in a buffered mode (see
BufferedFragment and BufferedElement). A buffered node is linked into the
tree immediately, but its content is held in memory until the caller
releases it. This lets a client fill in a subtree discovered later without
losing its place in the stream: everything that follows the buffered node
in document order is queued behind it and flushed, in order, once the
buffer is released.

A minimal session looks like this:

	doc, _ := xmlout.NewDocument(writer.New(os.Stdout))
	root, _ := doc.AddElement(nil, "inventory")
	summary := root.CreateBufferedFragment()
	root.AddBuffered(summary)              // placeholder, filled in later
	item, _ := root.AddElement(nil, "item")
	item.AddCharacters("socks")
	summary.AddCharacters("1 item")
	summary.Release()                      // unblocks everything queued after it
	doc.Close()

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package xmlout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xmlout'.
func tracer() tracing.Trace {
	return tracing.Select("xmlout")
}
