package xmlout

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strings"

	"github.com/npillmayer/xmlout/writer"
	"go.uber.org/multierr"
)

// Fragment is a root-level output container: the entry point for writing
// XML content without a document wrapper (no XML declaration). It owns a
// fresh Context over the given sink.
type Fragment struct {
	container
	active bool
}

// NewFragment creates a root fragment writing to the given sink.
func NewFragment(sw writer.StreamWriter) *Fragment {
	f := &Fragment{active: true}
	f.init(newContext(sw), f)
	return f
}

// Close finalizes the fragment: all pending output, including content
// still held by buffered descendants, is forced out and the sink is
// flushed. Adding content after Close panics.
func (f *Fragment) Close() error {
	if !f.active {
		return nil
	}
	f.active = false
	tracer().Debugf("closing root fragment, forcing pending output")
	err := f.forceChildOutput()
	return multierr.Append(err, f.ctx.flush())
}

func (f *Fragment) canOutputNewChild() (bool, error) {
	if !f.active {
		panic("xmlout: root container is closed, cannot add content")
	}
	return f.closeAndOutputChildren()
}

func (f *Fragment) doOutput(ctx *Context, canClose bool) (bool, error) {
	if canClose {
		return f.closeAndOutputChildren()
	}
	return f.closeAllButLastChild()
}

func (f *Fragment) forceOutput(ctx *Context) error {
	return f.forceChildOutput()
}

func (f *Fragment) passRelease(child outputtable) bool {
	return child == f.firstChild && f.active
}

// drainRelease re-drains the root queue at the top of a release cascade.
// The trailing child may still receive content and is flushed without
// being closed.
func (f *Fragment) drainRelease() error {
	_, err := f.closeAllButLastChild()
	return err
}

func (f *Fragment) appendPath(sb *strings.Builder) {
	// root: path starts here
}

// Document is a root container for a complete XML document: it writes the
// XML declaration up front and ends the document on Close.
type Document struct {
	Fragment
}

// NewDocument creates a document writing to the given sink and emits the
// XML declaration.
func NewDocument(sw writer.StreamWriter) (*Document, error) {
	d := &Document{}
	d.active = true
	d.init(newContext(sw), d)
	if err := sw.StartDocument("1.0", "UTF-8"); err != nil {
		return nil, err
	}
	return d, nil
}

var (
	_ Container = (*Fragment)(nil)
	_ Container = (*Document)(nil)
	_ Container = (*Element)(nil)
)

// Close forces all pending output, ends the document (closing any still
// open elements) and flushes the sink.
func (d *Document) Close() error {
	if !d.active {
		return nil
	}
	d.active = false
	tracer().Debugf("closing document, forcing pending output")
	err := d.forceChildOutput()
	err = multierr.Append(err, d.ctx.writer.EndDocument())
	return multierr.Append(err, d.ctx.flush())
}
