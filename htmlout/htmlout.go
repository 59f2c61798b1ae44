/*
Package htmlout serializes parsed HTML trees (golang.org/x/net/html) through
the xmlout streaming API, producing well-formed XML output.

The bridge is streaming-friendly: nodes are appended to a live output
container in document order, so a subtree parsed from HTML can be spliced
into a larger document that is already being written, including into
buffered sections.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package htmlout

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/xmlout"
	"golang.org/x/net/html"
)

// tracer traces with key 'xmlout.htmlout'.
func tracer() tracing.Trace {
	return tracing.Select("xmlout.htmlout")
}

// Append writes the HTML tree rooted at n into container c, in document
// order. Element, text and comment nodes are carried over; doctype nodes
// are dropped (the output document declares itself). Document nodes are
// transparent: their children are appended directly.
func Append(c xmlout.Container, n *html.Node) error {
	if n == nil {
		return nil
	}
	switch n.Type {
	case html.DocumentNode:
		return appendChildren(c, n)
	case html.ElementNode:
		return appendElement(c, n)
	case html.TextNode:
		return c.AddCharacters(n.Data)
	case html.CommentNode:
		return c.AddComment(n.Data)
	case html.DoctypeNode:
		tracer().Debugf("dropping doctype node %q", n.Data)
		return nil
	}
	return fmt.Errorf("htmlout: cannot serialize node type %d", n.Type)
}

func appendElement(c xmlout.Container, n *html.Node) error {
	ns := c.Context().Namespace(n.Namespace)
	e, err := c.AddElement(ns, n.Data)
	if err != nil {
		return err
	}
	for _, a := range n.Attr {
		ans := c.Context().Namespace(a.Namespace)
		if err := e.AddAttribute(ans, a.Key, a.Val); err != nil {
			return err
		}
	}
	return appendChildren(e, n)
}

func appendChildren(c xmlout.Container, n *html.Node) error {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if err := Append(c, ch); err != nil {
			return err
		}
	}
	return nil
}
