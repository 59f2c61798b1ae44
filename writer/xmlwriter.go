package writer

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ErrNoOpenStartTag is returned when an attribute or namespace declaration
// arrives although no start tag is open any more.
var ErrNoOpenStartTag = errors.New("no open start tag to attach attribute to")

// ErrNoOpenElement is returned for an end-element call without a matching
// start.
var ErrNoOpenElement = errors.New("no open element to end")

// ErrInvalidComment is returned for comment content containing "--".
var ErrInvalidComment = errors.New(`comment must not contain "--"`)

// ErrInvalidCData is returned for CDATA content containing "]]>".
var ErrInvalidCData = errors.New(`CDATA section must not contain "]]>"`)

// ErrInvalidPI is returned for processing-instruction data containing "?>".
var ErrInvalidPI = errors.New(`processing instruction must not contain "?>"`)

// xmlWriter writes XML 1.0 text to an io.Writer. Start tags are held open
// ("<name" plus attributes) until the first content write; elements
// without content render as "<name/>".
type xmlWriter struct {
	w       *bufio.Writer
	stack   []string // qualified names of open elements
	tagOpen bool     // start tag of the innermost element still open
}

// New returns a StreamWriter producing XML text on w. Output is buffered;
// call Flush (or close the owning document) to push it out.
func New(w io.Writer) StreamWriter {
	return &xmlWriter{w: bufio.NewWriter(w)}
}

func qname(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// closeTag finishes a pending start tag with '>'.
func (xw *xmlWriter) closeTag() error {
	if !xw.tagOpen {
		return nil
	}
	xw.tagOpen = false
	return xw.w.WriteByte('>')
}

func (xw *xmlWriter) StartDocument(version, encoding string) error {
	if version == "" {
		version = "1.0"
	}
	if _, err := xw.w.WriteString(`<?xml version="` + version + `"`); err != nil {
		return err
	}
	if encoding != "" {
		if _, err := xw.w.WriteString(` encoding="` + encoding + `"`); err != nil {
			return err
		}
	}
	_, err := xw.w.WriteString("?>\n")
	return err
}

// EndDocument closes all elements still open.
func (xw *xmlWriter) EndDocument() error {
	for len(xw.stack) > 0 {
		if err := xw.EndElement(); err != nil {
			return err
		}
	}
	return nil
}

func (xw *xmlWriter) StartElement(prefix, local string) error {
	if err := xw.closeTag(); err != nil {
		return err
	}
	qn := qname(prefix, local)
	tracer().Debugf("start element <%s>", qn)
	if err := xw.w.WriteByte('<'); err != nil {
		return err
	}
	if _, err := xw.w.WriteString(qn); err != nil {
		return err
	}
	xw.stack = append(xw.stack, qn)
	xw.tagOpen = true
	return nil
}

func (xw *xmlWriter) Attribute(prefix, local, value string) error {
	if !xw.tagOpen {
		return ErrNoOpenStartTag
	}
	if _, err := xw.w.WriteString(" " + qname(prefix, local) + `="`); err != nil {
		return err
	}
	if _, err := xw.w.WriteString(escapeAttr(value)); err != nil {
		return err
	}
	return xw.w.WriteByte('"')
}

func (xw *xmlWriter) NamespaceDecl(prefix, uri string) error {
	if !xw.tagOpen {
		return ErrNoOpenStartTag
	}
	name := "xmlns"
	if prefix != "" {
		name = "xmlns:" + prefix
	}
	_, err := xw.w.WriteString(" " + name + `="` + escapeAttr(uri) + `"`)
	return err
}

func (xw *xmlWriter) EndElement() error {
	n := len(xw.stack)
	if n == 0 {
		return ErrNoOpenElement
	}
	qn := xw.stack[n-1]
	xw.stack = xw.stack[:n-1]
	if xw.tagOpen {
		// no content: empty-element form
		xw.tagOpen = false
		_, err := xw.w.WriteString("/>")
		return err
	}
	_, err := xw.w.WriteString("</" + qn + ">")
	return err
}

func (xw *xmlWriter) Characters(text string) error {
	if err := xw.closeTag(); err != nil {
		return err
	}
	_, err := xw.w.WriteString(escapeText(text))
	return err
}

func (xw *xmlWriter) CData(text string) error {
	if strings.Contains(text, "]]>") {
		return ErrInvalidCData
	}
	if err := xw.closeTag(); err != nil {
		return err
	}
	_, err := xw.w.WriteString("<![CDATA[" + text + "]]>")
	return err
}

func (xw *xmlWriter) Comment(text string) error {
	if strings.Contains(text, "--") {
		return ErrInvalidComment
	}
	if err := xw.closeTag(); err != nil {
		return err
	}
	_, err := xw.w.WriteString("<!--" + text + "-->")
	return err
}

func (xw *xmlWriter) ProcessingInstruction(target, data string) error {
	if strings.Contains(data, "?>") {
		return ErrInvalidPI
	}
	if err := xw.closeTag(); err != nil {
		return err
	}
	if data == "" {
		_, err := xw.w.WriteString("<?" + target + "?>")
		return err
	}
	_, err := xw.w.WriteString("<?" + target + " " + data + "?>")
	return err
}

func (xw *xmlWriter) EntityRef(name string) error {
	if err := xw.closeTag(); err != nil {
		return err
	}
	_, err := xw.w.WriteString("&" + name + ";")
	return err
}

func (xw *xmlWriter) Raw(text string) error {
	if err := xw.closeTag(); err != nil {
		return err
	}
	_, err := xw.w.WriteString(text)
	return err
}

func (xw *xmlWriter) Flush() error {
	return xw.w.Flush()
}

// escapeText escapes text content. Newlines and tabs pass through;
// encoding/xml.EscapeText would turn them into character references.
func escapeText(s string) string {
	if !strings.ContainsAny(s, "&<>") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// escapeAttr escapes attribute values for double-quoted attributes.
func escapeAttr(s string) string {
	if !strings.ContainsAny(s, "&<>\"\n\t") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		case '\n':
			sb.WriteString("&#xA;")
		case '\t':
			sb.WriteString("&#x9;")
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
