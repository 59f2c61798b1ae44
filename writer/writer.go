/*
Package writer defines the append-only sink the serializer writes to, and
provides an implementation producing XML 1.0 text on an io.Writer.

The sink is forward-only: it never reorders or withholds content (apart
from plain byte buffering), and it fails only by returning an I/O or
validity error. All ordering guarantees live in the layer above.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package writer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xmlout.writer'.
func tracer() tracing.Trace {
	return tracing.Select("xmlout.writer")
}

// StreamWriter is the set of primitive write operations the serializer
// needs from a sink. Calls arrive in document order; a start tag stays
// open for Attribute and NamespaceDecl calls until the first content
// write.
type StreamWriter interface {
	StartDocument(version, encoding string) error
	EndDocument() error

	StartElement(prefix, local string) error
	Attribute(prefix, local, value string) error
	NamespaceDecl(prefix, uri string) error
	EndElement() error

	Characters(text string) error
	CData(text string) error
	Comment(text string) error
	ProcessingInstruction(target, data string) error
	EntityRef(name string) error

	// Raw writes pre-formatted output, typically indentation whitespace.
	Raw(text string) error

	Flush() error
}
