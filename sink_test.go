package xmlout

import (
	"errors"
	"fmt"
	"strings"

	tp "github.com/xlab/treeprint"
)

// recordingSink implements writer.StreamWriter and records every write as a
// compact token, so tests can compare emission order against an expectation
// string. A token set in failOn makes the corresponding write fail.
type recordingSink struct {
	ops    []string
	stack  []string
	failOn string
}

var errSinkFailure = errors.New("injected sink failure")

func (s *recordingSink) record(op string) error {
	if s.failOn != "" && op == s.failOn {
		return errSinkFailure
	}
	s.ops = append(s.ops, op)
	return nil
}

// output joins the recorded tokens for comparison in tests.
func (s *recordingSink) output() string {
	return strings.Join(s.ops, " ")
}

func (s *recordingSink) count(op string) int {
	n := 0
	for _, o := range s.ops {
		if o == op {
			n++
		}
	}
	return n
}

func qn(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

func (s *recordingSink) StartDocument(version, encoding string) error {
	return s.record("decl")
}

func (s *recordingSink) EndDocument() error {
	for len(s.stack) > 0 {
		if err := s.EndElement(); err != nil {
			return err
		}
	}
	return nil
}

func (s *recordingSink) StartElement(prefix, local string) error {
	s.stack = append(s.stack, qn(prefix, local))
	return s.record("<" + qn(prefix, local))
}

func (s *recordingSink) Attribute(prefix, local, value string) error {
	return s.record("@" + qn(prefix, local) + "=" + value)
}

func (s *recordingSink) NamespaceDecl(prefix, uri string) error {
	return s.record("xmlns:" + prefix + "=" + uri)
}

func (s *recordingSink) EndElement() error {
	name := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return s.record("</" + name)
}

func (s *recordingSink) Characters(text string) error {
	return s.record("#" + text)
}

func (s *recordingSink) CData(text string) error {
	return s.record("[" + text + "]")
}

func (s *recordingSink) Comment(text string) error {
	return s.record("!" + text)
}

func (s *recordingSink) ProcessingInstruction(target, data string) error {
	return s.record("?" + target + " " + data)
}

func (s *recordingSink) EntityRef(name string) error {
	return s.record("&" + name)
}

func (s *recordingSink) Raw(text string) error {
	return s.record("~" + text)
}

func (s *recordingSink) Flush() error { return nil }

// --- Pending-queue dump ---------------------------------------------------

// printPending renders a container's pending-child queue as a tree, for
// test logging.
func printPending(c *container) string {
	p := tp.New()
	ppq(p, c)
	return p.String()
}

func ppq(p tp.Tree, c *container) {
	for ch := c.firstChild; ch != nil; ch = ch.next() {
		switch x := ch.(type) {
		case *BufferedFragment:
			ppq(p.AddBranch("buffered fragment"), &x.container)
		case *BufferedElement:
			ppq(p.AddBranch(fmt.Sprintf("buffered <%s>", x.localName)), &x.container)
		case *Element:
			ppq(p.AddBranch(fmt.Sprintf("<%s>", x.localName)), &x.container)
		case *simpleNode:
			p.AddNode(simpleLabel(x))
		}
	}
}

func simpleLabel(s *simpleNode) string {
	switch s.kind {
	case textNode:
		return fmt.Sprintf("text(%q)", s.value)
	case cdataNode:
		return fmt.Sprintf("cdata(%q)", s.value)
	case commentNode:
		return fmt.Sprintf("comment(%q)", s.value)
	case entityRefNode:
		return fmt.Sprintf("entityref(%q)", s.value)
	case piNode:
		return fmt.Sprintf("pi(%s %q)", s.target, s.value)
	case attrNode:
		return fmt.Sprintf("attr(%s=%q)", s.target, s.value)
	}
	return "?"
}
